package ink

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default software rendering, stock pen
//	eng, err := ink.NewEngine(800, 600)
//
//	// Tuned engine
//	eng, err := ink.NewEngine(800, 600,
//		ink.WithTool(ink.ToolCalligraphy),
//		ink.WithHistoryLimit(100))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	renderer         Renderer
	historyLimit     int
	background       *RGBA
	tool             ToolKind
	config           *BrushConfig
	pressureWindow   int
	pressureMaxSpeed float64
}

func defaultOptions() engineOptions {
	return engineOptions{
		tool: ToolPen,
	}
}

// WithRenderer injects a custom renderer. Tests use this to record draw
// calls; production engines keep the default software renderer.
func WithRenderer(r Renderer) Option {
	return func(o *engineOptions) { o.renderer = r }
}

// WithHistoryLimit bounds the undo and redo stacks. Non-positive values
// select DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(o *engineOptions) { o.historyLimit = n }
}

// WithBackground sets the initial background color.
func WithBackground(c RGBA) Option {
	return func(o *engineOptions) { o.background = &c }
}

// WithTool selects the initial tool.
func WithTool(kind ToolKind) Option {
	return func(o *engineOptions) { o.tool = kind }
}

// WithBrush sets the initial tool's configuration. It is validated in
// NewEngine; an invalid config fails construction.
func WithBrush(cfg BrushConfig) Option {
	return func(o *engineOptions) { o.config = &cfg }
}

// WithPressureTuning adjusts the velocity pressure model: window is the
// number of speed samples averaged, maxSpeed the speed in px/ms mapped
// to minimum simulated pressure. Zero values keep the defaults.
func WithPressureTuning(window int, maxSpeed float64) Option {
	return func(o *engineOptions) {
		o.pressureWindow = window
		o.pressureMaxSpeed = maxSpeed
	}
}

// WithSettings applies a loaded settings file: history limit and
// pressure tuning. Brush presets are resolved separately through
// Settings.Preset.
func WithSettings(s Settings) Option {
	return func(o *engineOptions) {
		o.historyLimit = s.HistoryLimit
		o.pressureWindow = s.PressureWindow
		o.pressureMaxSpeed = s.PressureMaxSpeed
	}
}
