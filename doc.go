// Package ink is the freehand drawing engine for a personal journaling app.
//
// # Overview
//
// ink captures pointer input, smooths it into quadratic curves, estimates
// pressure (hardware or velocity-derived), and renders pressure-sensitive
// strokes onto a retained drawing surface. The surface supports bounded
// undo/redo, keyed persistence, and export to PNG, JPEG, SVG and PDF.
// Everything is headless: the host owns the display and feeds pointer
// events in; ink hands composited pixels back.
//
// # Quick Start
//
//	import "github.com/vellumnote/ink"
//
//	eng, _ := ink.NewEngine(800, 600)
//	eng.SetTool(ink.ToolCalligraphy)
//
//	eng.HandlePointer(ink.PointerEvent{ID: 1, Phase: ink.PhaseDown, X: 10, Y: 10, Pressure: 0.4})
//	eng.HandlePointer(ink.PointerEvent{ID: 1, Phase: ink.PhaseMove, X: 50, Y: 40, Pressure: 0.7, TimeMs: 16})
//	eng.HandlePointer(ink.PointerEvent{ID: 1, Phase: ink.PhaseUp, X: 50, Y: 40, TimeMs: 32})
//
//	var buf bytes.Buffer
//	_ = eng.Export(&buf, ink.FormatPNG, ink.ExportOptions{})
//
// # Architecture
//
// The package is organized into:
//   - Public API: Engine, Surface, Smoother, PressureEstimator, StateManager
//   - Internal: stroke (outline expansion), raster (scanline AA), blend (compositing)
//   - Subpackages: store (keyed snapshot persistence)
//
// # Event Model
//
// The engine is single-threaded and event-driven. All capture, smoothing and
// rendering happens synchronously on the caller's goroutine; a concurrent
// host must serialize access through one owner. Each pointer ID gets its own
// capture session, so multi-touch input never interleaves stroke state.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
package ink

// Version information
const (
	// Version is the current version of the engine
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
