package ink

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vellumnote/ink/store"
)

// SurfaceState is an immutable snapshot of a surface at one point in
// time. Content is held in serialized form, so a state can sit on the
// history stacks, travel through a store, and be applied back without
// sharing any live objects with the surface.
type SurfaceState struct {
	id     string
	timeMs int64
	width  int
	height int
	data   []byte
}

// ID returns the snapshot identifier.
func (st *SurfaceState) ID() string { return st.id }

// Time returns the capture time.
func (st *SurfaceState) Time() time.Time { return time.UnixMilli(st.timeMs) }

// Width returns the surface width at capture.
func (st *SurfaceState) Width() int { return st.width }

// Height returns the surface height at capture.
func (st *SurfaceState) Height() int { return st.height }

// CaptureState snapshots a surface into a new state.
func CaptureState(s *Surface) (*SurfaceState, error) {
	data, err := encodeGraph(s)
	if err != nil {
		return nil, err
	}
	return &SurfaceState{
		id:     uuid.NewString(),
		timeMs: time.Now().UnixMilli(),
		width:  s.width,
		height: s.height,
		data:   data,
	}, nil
}

// Mode is the recording state of a StateManager.
type Mode uint8

const (
	// ModeIdle means no history operation is in flight.
	ModeIdle Mode = iota
	// ModeRecording means a snapshot push is in progress.
	ModeRecording
	// ModeRestoring means a historical or persisted state is being
	// applied. Recording is suppressed for the duration so a restore can
	// never corrupt the stacks it is replaying from.
	ModeRestoring
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRecording:
		return "recording"
	case ModeRestoring:
		return "restoring"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// StateManager owns the undo/redo timeline and persistence for one
// surface. The live surface always matches the manager's current cell;
// the stacks hold past and undone states around it, so N committed
// mutations are undoable by exactly N undos.
type StateManager struct {
	surface *Surface
	history *History
	current *SurfaceState
	mode    Mode
}

// NewStateManager wraps a surface with history. The initial content is
// captured as the baseline, so the first committed action can be undone
// back to it. A non-positive limit selects DefaultHistoryLimit.
func NewStateManager(surface *Surface, limit int) (*StateManager, error) {
	cur, err := CaptureState(surface)
	if err != nil {
		return nil, err
	}
	return &StateManager{
		surface: surface,
		history: NewHistory(limit),
		current: cur,
	}, nil
}

// Mode returns the manager's recording state.
func (m *StateManager) Mode() Mode { return m.mode }

// Current returns the state matching the live surface.
func (m *StateManager) Current() *SurfaceState { return m.current }

// CanUndo reports whether an undo would succeed.
func (m *StateManager) CanUndo() bool { return m.history.UndoDepth() > 0 }

// CanRedo reports whether a redo would succeed.
func (m *StateManager) CanRedo() bool { return m.history.RedoDepth() > 0 }

// UndoDepth returns the number of states reachable by undo.
func (m *StateManager) UndoDepth() int { return m.history.UndoDepth() }

// RedoDepth returns the number of states reachable by redo.
func (m *StateManager) RedoDepth() int { return m.history.RedoDepth() }

// SaveState records a committed surface mutation: the previous state goes
// onto the undo stack and the redo stack is cleared. Calls while a
// restore is in flight are ignored; that is the guard the load and undo
// paths rely on.
func (m *StateManager) SaveState() error {
	if m.mode == ModeRestoring {
		return nil
	}
	m.mode = ModeRecording
	defer func() { m.mode = ModeIdle }()

	st, err := CaptureState(m.surface)
	if err != nil {
		return err
	}
	m.history.PushUndo(m.current)
	m.history.ClearRedo()
	m.current = st
	return nil
}

// Undo restores the most recent previous state. The surface is untouched
// when no history exists.
func (m *StateManager) Undo() error {
	prev, ok := m.history.PopUndo()
	if !ok {
		return fmt.Errorf("%w: undo stack empty", ErrNoHistory)
	}
	if err := m.apply(prev); err != nil {
		m.history.PushUndo(prev)
		return err
	}
	m.history.PushRedo(m.current)
	m.current = prev
	return nil
}

// Redo reapplies the most recently undone state. The surface is untouched
// when nothing has been undone.
func (m *StateManager) Redo() error {
	next, ok := m.history.PopRedo()
	if !ok {
		return fmt.Errorf("%w: redo stack empty", ErrNoHistory)
	}
	if err := m.apply(next); err != nil {
		m.history.PushRedo(next)
		return err
	}
	m.history.PushUndo(m.current)
	m.current = next
	return nil
}

// ClearHistory drops both stacks. The current state is unaffected.
func (m *StateManager) ClearHistory() {
	m.history.Clear()
}

// SaveTo writes the current state to a store under key.
func (m *StateManager) SaveTo(ctx context.Context, s store.Store, key string) error {
	data, err := EncodeState(m.current)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("ink: save state %q: %w", key, err)
	}
	return nil
}

// LoadFrom reads a state from a store and applies it. The load is not
// recorded, so restoring a persisted snapshot does not generate a
// spurious undo entry; existing history stays intact.
func (m *StateManager) LoadFrom(ctx context.Context, s store.Store, key string) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("ink: load state %q: %w", key, err)
	}
	st, err := DecodeState(data)
	if err != nil {
		return err
	}
	if err := m.apply(st); err != nil {
		return err
	}
	m.current = st
	return nil
}

// apply restores a snapshot onto the surface under the Restoring guard.
func (m *StateManager) apply(st *SurfaceState) error {
	bg, strokes, err := decodeGraph(st.data)
	if err != nil {
		return err
	}
	m.mode = ModeRestoring
	defer func() { m.mode = ModeIdle }()
	return m.surface.Restore(st.width, st.height, bg, strokes)
}
