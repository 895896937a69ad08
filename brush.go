package ink

import "fmt"

// ToolKind identifies a brush variant. The set is closed: rendering
// dispatches on the tag through a per-tool parameter table, so adding a
// variant means adding a table entry, not a type.
type ToolKind uint8

const (
	// ToolPen is a general-purpose pen with the full pressure range.
	ToolPen ToolKind = iota
	// ToolCalligraphy holds a fixed nib angle; width follows both pressure
	// and stroke direction.
	ToolCalligraphy
	// ToolMarker is a broad, slightly transparent tip with an optional
	// paper-grain texture.
	ToolMarker
	// ToolHighlighter is a near-constant-width translucent tool that
	// multiplies into underlying content instead of covering it.
	ToolHighlighter
)

// String returns the tool name used in snapshots and presets.
func (k ToolKind) String() string {
	switch k {
	case ToolPen:
		return "pen"
	case ToolCalligraphy:
		return "calligraphy"
	case ToolMarker:
		return "marker"
	case ToolHighlighter:
		return "highlighter"
	default:
		return fmt.Sprintf("ToolKind(%d)", uint8(k))
	}
}

// ParseToolKind resolves a tool name from a snapshot or preset.
func ParseToolKind(s string) (ToolKind, error) {
	switch s {
	case "pen":
		return ToolPen, nil
	case "calligraphy":
		return ToolCalligraphy, nil
	case "marker":
		return ToolMarker, nil
	case "highlighter":
		return ToolHighlighter, nil
	}
	return 0, fmt.Errorf("%w: unknown tool %q", ErrInvalidBrushConfig, s)
}

// BrushConfig is an immutable brush description. The engine snapshots the
// active config at stroke start, so edits mid-stroke never affect a stroke
// already in flight. Construct updates with Apply and validate with
// Validate; invalid configs are rejected, never silently clamped.
type BrushConfig struct {
	// MinWidth and MaxWidth bound the rendered stroke width in pixels.
	// Both must be positive and MinWidth must not exceed MaxWidth.
	MinWidth float64
	MaxWidth float64

	// Smoothing in [0, 1] controls corner cutting; 0 draws the raw
	// polyline, 1 cuts corners maximally.
	Smoothing float64

	// PressureSensitivity in [0, 1] scales how strongly pressure drives
	// width; 0 pins the width to MinWidth.
	PressureSensitivity float64

	// Opacity in [0, 1] is the overall stroke alpha.
	Opacity float64

	// Flow in [0, 1] scales per-pass pigment deposit. Zero means full flow.
	Flow float64

	// Color is the stroke color. Its alpha multiplies with Opacity.
	Color RGBA

	// Texture names an optional tip texture ("grain"). Empty means none.
	Texture string
}

// Validate reports ErrInvalidBrushConfig if any field is out of range.
func (c BrushConfig) Validate() error {
	if c.MinWidth <= 0 || c.MaxWidth <= 0 {
		return fmt.Errorf("%w: widths must be positive (min=%g max=%g)", ErrInvalidBrushConfig, c.MinWidth, c.MaxWidth)
	}
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("%w: min width %g exceeds max width %g", ErrInvalidBrushConfig, c.MinWidth, c.MaxWidth)
	}
	if !inUnit(c.Smoothing) {
		return fmt.Errorf("%w: smoothing %g outside [0,1]", ErrInvalidBrushConfig, c.Smoothing)
	}
	if !inUnit(c.PressureSensitivity) {
		return fmt.Errorf("%w: pressure sensitivity %g outside [0,1]", ErrInvalidBrushConfig, c.PressureSensitivity)
	}
	if !inUnit(c.Opacity) {
		return fmt.Errorf("%w: opacity %g outside [0,1]", ErrInvalidBrushConfig, c.Opacity)
	}
	if !inUnit(c.Flow) {
		return fmt.Errorf("%w: flow %g outside [0,1]", ErrInvalidBrushConfig, c.Flow)
	}
	return nil
}

// WidthAt returns the rendered width for a pressure value, always within
// [MinWidth, MaxWidth].
func (c BrushConfig) WidthAt(pressure float64) float64 {
	w := c.MinWidth + (c.MaxWidth-c.MinWidth)*clamp01(pressure)*c.PressureSensitivity
	if w < c.MinWidth {
		return c.MinWidth
	}
	if w > c.MaxWidth {
		return c.MaxWidth
	}
	return w
}

// EffectiveOpacity folds Flow into Opacity. Flow zero means full flow.
func (c BrushConfig) EffectiveOpacity() float64 {
	o := c.Opacity
	if c.Flow > 0 {
		o *= c.Flow
	}
	return o
}

// BrushPartial is a partial brush update. Nil fields keep their current
// value; set fields replace it. Apply produces a new candidate config and
// never mutates the receiver.
type BrushPartial struct {
	MinWidth            *float64
	MaxWidth            *float64
	Smoothing           *float64
	PressureSensitivity *float64
	Opacity             *float64
	Flow                *float64
	Color               *RGBA
	Texture             *string
}

// Apply returns a copy of c with the partial's set fields replacing the
// originals. The result is a candidate; callers must Validate it before
// adopting it.
func (c BrushConfig) Apply(p BrushPartial) BrushConfig {
	if p.MinWidth != nil {
		c.MinWidth = *p.MinWidth
	}
	if p.MaxWidth != nil {
		c.MaxWidth = *p.MaxWidth
	}
	if p.Smoothing != nil {
		c.Smoothing = *p.Smoothing
	}
	if p.PressureSensitivity != nil {
		c.PressureSensitivity = *p.PressureSensitivity
	}
	if p.Opacity != nil {
		c.Opacity = *p.Opacity
	}
	if p.Flow != nil {
		c.Flow = *p.Flow
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Texture != nil {
		c.Texture = *p.Texture
	}
	return c
}

// DefaultBrush returns the stock configuration for a tool.
func DefaultBrush(kind ToolKind) BrushConfig {
	switch kind {
	case ToolCalligraphy:
		return BrushConfig{
			MinWidth:            1,
			MaxWidth:            6,
			Smoothing:           0.6,
			PressureSensitivity: 0.9,
			Opacity:             1,
			Color:               Black,
		}
	case ToolMarker:
		return BrushConfig{
			MinWidth:            4,
			MaxWidth:            10,
			Smoothing:           0.5,
			PressureSensitivity: 0.35,
			Opacity:             0.85,
			Color:               Black,
			Texture:             TextureGrain,
		}
	case ToolHighlighter:
		return BrushConfig{
			MinWidth:            12,
			MaxWidth:            14,
			Smoothing:           0.4,
			PressureSensitivity: 0.05,
			Opacity:             0.3,
			Color:               Hex("#ffe45c"),
		}
	default:
		return BrushConfig{
			MinWidth:            0.5,
			MaxWidth:            4,
			Smoothing:           0.5,
			PressureSensitivity: 1,
			Opacity:             1,
			Color:               Black,
		}
	}
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }
