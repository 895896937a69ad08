package ink

import (
	"context"
	"fmt"
	"io"

	"github.com/vellumnote/ink/store"
)

// PointerPhase identifies where an event falls in a pointer's lifecycle.
type PointerPhase uint8

const (
	// PhaseDown starts a capture session.
	PhaseDown PointerPhase = iota
	// PhaseMove extends the active session.
	PhaseMove
	// PhaseUp commits the in-progress stroke to the surface.
	PhaseUp
	// PhaseCancel discards the in-progress stroke, for lost pointer
	// capture or a palm-rejection veto. Nothing reaches the surface.
	PhaseCancel
)

// String returns the phase name.
func (p PointerPhase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", uint8(p))
	}
}

// PointerType says what kind of device produced an event.
type PointerType uint8

const (
	// PointerMouse is a mouse or trackpad; no hardware pressure.
	PointerMouse PointerType = iota
	// PointerTouch is a finger; pressure support varies by device.
	PointerTouch
	// PointerPen is a stylus, usually with hardware pressure.
	PointerPen
)

// String returns the device name.
func (t PointerType) String() string {
	switch t {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return fmt.Sprintf("PointerType(%d)", uint8(t))
	}
}

// PointerEvent is one input sample from the host. ID distinguishes
// simultaneous pointers; each ID gets its own capture session, so
// multi-touch strokes never contaminate each other. Pressure is the
// hardware reading in (0, 1]; zero means the device reports none and the
// engine simulates pressure from velocity. TimeMs is the host event
// timestamp in milliseconds.
type PointerEvent struct {
	ID       int
	Phase    PointerPhase
	Type     PointerType
	X        float64
	Y        float64
	Pressure float64
	TimeMs   int64
}

// Engine is the drawing engine: it turns pointer events into strokes on
// a surface and owns the undo/redo timeline around it.
//
// The engine is single-threaded by design. All capture, smoothing,
// rendering, and history work happens synchronously inside the call that
// delivers the event, and events for one pointer must arrive in order.
// Hosts with more than one input thread serialize delivery themselves.
type Engine struct {
	surface  *Surface
	state    *StateManager
	renderer Renderer

	tool    ToolKind
	configs map[ToolKind]BrushConfig

	pressureWindow   int
	pressureMaxSpeed float64

	sessions map[int]*session
	order    []int

	preview      *Pixmap
	previewDirty bool
}

// NewEngine creates an engine with an empty surface.
func NewEngine(width, height int, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ink: surface dimensions %dx%d out of range", width, height)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	renderer := options.renderer
	if renderer == nil {
		renderer = NewSoftwareRenderer()
	}

	surface := NewSurface(width, height, renderer)
	if options.background != nil {
		if err := surface.SetBackground(*options.background); err != nil {
			return nil, err
		}
	}

	state, err := NewStateManager(surface, options.historyLimit)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		surface:          surface,
		state:            state,
		renderer:         renderer,
		tool:             options.tool,
		configs:          make(map[ToolKind]BrushConfig),
		pressureWindow:   options.pressureWindow,
		pressureMaxSpeed: options.pressureMaxSpeed,
		sessions:         make(map[int]*session),
	}
	if options.config != nil {
		if err := options.config.Validate(); err != nil {
			return nil, err
		}
		e.configs[e.tool] = *options.config
	}

	Logger().Info("engine created",
		"width", width,
		"height", height,
		"historyLimit", state.history.Limit(),
		"debugChecks", debugEnabled)
	return e, nil
}

// Surface returns the engine's surface.
func (e *Engine) Surface() *Surface { return e.surface }

// State returns the engine's state manager.
func (e *Engine) State() *StateManager { return e.state }

// Tool returns the active tool.
func (e *Engine) Tool() ToolKind { return e.tool }

// BrushConfig returns the active tool's configuration.
func (e *Engine) BrushConfig() BrushConfig { return e.configFor(e.tool) }

// SetTool switches the active tool, optionally applying config overrides
// on top of the tool's remembered configuration. An invalid resulting
// config rejects the whole call: the previous tool and config stay in
// effect. Strokes already in flight keep the config they started with.
func (e *Engine) SetTool(kind ToolKind, overrides ...BrushPartial) error {
	cfg := e.configFor(kind)
	for _, p := range overrides {
		cfg = cfg.Apply(p)
	}
	if err := cfg.Validate(); err != nil {
		Logger().Warn("tool change rejected", "tool", kind, "error", err)
		return err
	}
	e.tool = kind
	e.configs[kind] = cfg
	Logger().Debug("tool changed", "tool", kind)
	return nil
}

// UpdateBrushConfig applies a partial update to the active tool's
// configuration. An invalid result is rejected and the previous config
// retained.
func (e *Engine) UpdateBrushConfig(p BrushPartial) error {
	cfg := e.configFor(e.tool).Apply(p)
	if err := cfg.Validate(); err != nil {
		Logger().Warn("brush update rejected", "tool", e.tool, "error", err)
		return err
	}
	e.configs[e.tool] = cfg
	return nil
}

// configFor returns the remembered config for a tool, falling back to
// the stock configuration.
func (e *Engine) configFor(kind ToolKind) BrushConfig {
	if cfg, ok := e.configs[kind]; ok {
		return cfg
	}
	return DefaultBrush(kind)
}

// ActiveSessions returns the number of pointers currently capturing.
func (e *Engine) ActiveSessions() int { return len(e.sessions) }

// HandlePointer feeds one input event through the engine. Down starts a
// session, move extends it, up commits the stroke and records an undo
// entry, cancel discards the stroke without touching the surface.
func (e *Engine) HandlePointer(ev PointerEvent) error {
	switch ev.Phase {
	case PhaseDown:
		return e.pointerDown(ev)
	case PhaseMove:
		return e.pointerMove(ev)
	case PhaseUp:
		return e.pointerUp(ev)
	case PhaseCancel:
		return e.pointerCancel(ev)
	default:
		return fmt.Errorf("ink: unknown pointer phase %d", uint8(ev.Phase))
	}
}

func (e *Engine) pointerDown(ev PointerEvent) error {
	if _, ok := e.sessions[ev.ID]; ok {
		// A down without a matching up means the host lost an event.
		// The half-captured stroke is unreliable; discard it.
		Logger().Warn("pointer down with session already active", "pointer", ev.ID)
		e.dropSession(ev.ID)
	}

	s := newSession(ev.ID, e.tool, e.configFor(e.tool), e.pressureWindow, e.pressureMaxSpeed)
	s.addPoint(ev)
	e.sessions[ev.ID] = s
	e.order = append(e.order, ev.ID)
	e.previewDirty = true

	Logger().Debug("stroke started", "pointer", ev.ID, "tool", e.tool, "device", ev.Type)
	return nil
}

func (e *Engine) pointerMove(ev PointerEvent) error {
	s, ok := e.sessions[ev.ID]
	if !ok {
		// Hover movement; nothing to capture.
		return nil
	}
	s.addPoint(ev)
	e.previewDirty = true
	return nil
}

func (e *Engine) pointerUp(ev PointerEvent) error {
	s, ok := e.sessions[ev.ID]
	if !ok {
		return nil
	}
	s.addPoint(ev)
	stroke := s.stroke()
	e.dropSession(ev.ID)
	e.previewDirty = true

	if stroke == nil || len(stroke.Points) == 0 {
		return nil
	}
	if err := e.surface.AddStroke(stroke); err != nil {
		return err
	}
	if err := e.state.SaveState(); err != nil {
		Logger().Warn("snapshot after stroke commit failed", "error", err)
		return err
	}
	Logger().Debug("stroke committed", "pointer", ev.ID, "points", len(stroke.Points))
	return nil
}

func (e *Engine) pointerCancel(ev PointerEvent) error {
	if e.dropSession(ev.ID) {
		e.previewDirty = true
		Logger().Debug("stroke discarded", "pointer", ev.ID)
	}
	return nil
}

// dropSession removes a session, reporting whether one existed.
func (e *Engine) dropSession(id int) bool {
	if _, ok := e.sessions[id]; !ok {
		return false
	}
	delete(e.sessions, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Composite returns the frame to present: the committed surface with
// every in-progress stroke drawn over it. The returned pixmap is a copy
// the caller may keep.
func (e *Engine) Composite() (*Pixmap, error) {
	if len(e.sessions) == 0 {
		return e.surface.Baked().Clone(), nil
	}
	if e.previewDirty || e.preview == nil {
		if err := e.repaintPreview(); err != nil {
			return nil, err
		}
	}
	return e.preview.Clone(), nil
}

// repaintPreview redraws every active stroke over a fresh copy of the
// baked surface, in session start order. Repainting from the baked copy
// keeps translucent previews identical to the eventual commit; extending
// the previous preview would composite overlapping stamps twice.
func (e *Engine) repaintPreview() error {
	e.preview = e.surface.Baked().Clone()
	for _, id := range e.order {
		stroke := e.sessions[id].stroke()
		if stroke == nil || len(stroke.Points) == 0 {
			continue
		}
		if err := e.renderer.DrawStroke(e.preview, stroke); err != nil {
			return err
		}
	}
	e.previewDirty = false
	return nil
}

// Undo restores the previous committed state. Fails with ErrNoHistory at
// the bottom of the timeline; the surface is untouched then.
func (e *Engine) Undo() error {
	if err := e.state.Undo(); err != nil {
		return err
	}
	e.previewDirty = true
	Logger().Debug("undo", "undoDepth", e.state.UndoDepth(), "redoDepth", e.state.RedoDepth())
	return nil
}

// Redo reapplies the most recently undone state. Fails with ErrNoHistory
// when nothing has been undone.
func (e *Engine) Redo() error {
	if err := e.state.Redo(); err != nil {
		return err
	}
	e.previewDirty = true
	Logger().Debug("redo", "undoDepth", e.state.UndoDepth(), "redoDepth", e.state.RedoDepth())
	return nil
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool { return e.state.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool { return e.state.CanRedo() }

// Clear removes every committed stroke. The cleared page is recorded, so
// Clear is undoable like any other mutation.
func (e *Engine) Clear() error {
	if err := e.surface.Clear(); err != nil {
		return err
	}
	e.previewDirty = true
	if err := e.state.SaveState(); err != nil {
		return err
	}
	Logger().Info("surface cleared")
	return nil
}

// Resize changes the surface dimensions. Recorded and undoable.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ink: surface dimensions %dx%d out of range", width, height)
	}
	if err := e.surface.Resize(width, height); err != nil {
		return err
	}
	e.previewDirty = true
	if err := e.state.SaveState(); err != nil {
		return err
	}
	Logger().Info("surface resized", "width", width, "height", height)
	return nil
}

// SetBackground changes the page background. Recorded and undoable.
func (e *Engine) SetBackground(c RGBA) error {
	if err := e.surface.SetBackground(c); err != nil {
		return err
	}
	e.previewDirty = true
	return e.state.SaveState()
}

// Export writes the committed surface in the requested format. Strokes
// still being captured are not included.
func (e *Engine) Export(w io.Writer, format ExportFormat, opts ExportOptions) error {
	return e.state.Export(w, format, opts)
}

// SaveTo persists the current committed state under key.
func (e *Engine) SaveTo(ctx context.Context, s store.Store, key string) error {
	return e.state.SaveTo(ctx, s, key)
}

// LoadFrom replaces the surface with a persisted state. The load is not
// recorded as an undoable action; see StateManager.LoadFrom.
func (e *Engine) LoadFrom(ctx context.Context, s store.Store, key string) error {
	if err := e.state.LoadFrom(ctx, s, key); err != nil {
		return err
	}
	e.previewDirty = true
	Logger().Info("state loaded", "key", key, "strokes", e.surface.StrokeCount())
	return nil
}
