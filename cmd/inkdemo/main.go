// Command inkdemo exercises the ink drawing engine end to end: it
// scripts pointer input for every tool, walks the undo/redo timeline,
// persists the page through a file store, and writes the surface out in
// each export format.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	hackos "github.com/hack-pad/hackpadfs/os"

	"github.com/vellumnote/ink"
	"github.com/vellumnote/ink/store"
)

func main() {
	var (
		width    = flag.Int("width", 800, "surface width")
		height   = flag.Int("height", 600, "surface height")
		outDir   = flag.String("out", "out", "output directory")
		settings = flag.String("settings", "ink.yaml", "optional settings file")
		verbose  = flag.Bool("v", false, "log engine internals")
	)
	flag.Parse()

	if *verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := ink.LoadSettings(*settings)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	opts := []ink.Option{ink.WithSettings(cfg)}
	if kind, brush, err := cfg.Preset("default"); err == nil {
		opts = append(opts, ink.WithTool(kind), ink.WithBrush(brush))
	}

	eng, err := ink.NewEngine(*width, *height, opts...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	w := float64(*width)
	h := float64(*height)

	// One committed stroke per tool
	drawPenWave(eng, w, h)
	drawCalligraphySwash(eng, w, h)
	drawMarkerBand(eng, w, h)
	drawHighlightBar(eng, w, h)

	// Two pointers capturing at once, interleaved
	drawCrosshatch(eng, w, h)

	// A cancelled stroke leaves no trace
	demoCancel(eng, w, h)

	walkHistory(eng)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}
	exportAll(eng, *outDir)
	persistDemo(eng, *outDir, w, h)

	log.Printf("Done: %d strokes on %dx%d surface", eng.Surface().StrokeCount(), *width, *height)
}

// sample is one scripted input point.
type sample struct {
	x, y, p float64
	t       int64
}

// play feeds one scripted stroke through the engine: down on the first
// sample, up on the last.
func play(eng *ink.Engine, id int, device ink.PointerType, samples []sample) {
	for i, s := range samples {
		phase := ink.PhaseMove
		switch i {
		case 0:
			phase = ink.PhaseDown
		case len(samples) - 1:
			phase = ink.PhaseUp
		}
		err := eng.HandlePointer(ink.PointerEvent{
			ID:       id,
			Phase:    phase,
			Type:     device,
			X:        s.x,
			Y:        s.y,
			Pressure: s.p,
			TimeMs:   s.t,
		})
		if err != nil {
			log.Fatalf("Pointer event failed: %v", err)
		}
	}
}

// drawPenWave draws a sine wave with a mouse: no hardware pressure, so
// width follows velocity simulation.
func drawPenWave(eng *ink.Engine, w, h float64) {
	if err := eng.SetTool(ink.ToolPen); err != nil {
		log.Fatalf("Failed to select pen: %v", err)
	}
	n := 64
	pts := make([]sample, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		pts = append(pts, sample{
			x: 0.08*w + 0.84*w*f,
			y: 0.22*h + 0.06*h*math.Sin(f*4*math.Pi),
			t: int64(i) * 9,
		})
	}
	play(eng, 1, ink.PointerMouse, pts)
}

// drawCalligraphySwash draws an S-curve with a stylus reporting real
// pressure, heavy in the middle.
func drawCalligraphySwash(eng *ink.Engine, w, h float64) {
	if err := eng.SetTool(ink.ToolCalligraphy); err != nil {
		log.Fatalf("Failed to select calligraphy: %v", err)
	}
	n := 48
	pts := make([]sample, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		pts = append(pts, sample{
			x: 0.15*w + 0.7*w*f,
			y: 0.45*h + 0.1*h*math.Sin(f*2*math.Pi),
			p: 0.25 + 0.75*math.Sin(f*math.Pi),
			t: int64(i) * 12,
		})
	}
	play(eng, 1, ink.PointerPen, pts)
}

// drawMarkerBand draws a slow horizontal band so the grain texture shows.
func drawMarkerBand(eng *ink.Engine, w, h float64) {
	if err := eng.SetTool(ink.ToolMarker); err != nil {
		log.Fatalf("Failed to select marker: %v", err)
	}
	red := ink.Hex("#c0392b")
	if err := eng.UpdateBrushConfig(ink.BrushPartial{Color: &red}); err != nil {
		log.Fatalf("Failed to recolor marker: %v", err)
	}
	n := 40
	pts := make([]sample, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		pts = append(pts, sample{
			x: 0.1*w + 0.8*w*f,
			y: 0.62 * h,
			t: int64(i) * 25,
		})
	}
	play(eng, 1, ink.PointerTouch, pts)
}

// drawHighlightBar runs the highlighter straight across the pen wave so
// the multiply blend shows through.
func drawHighlightBar(eng *ink.Engine, w, h float64) {
	if err := eng.SetTool(ink.ToolHighlighter); err != nil {
		log.Fatalf("Failed to select highlighter: %v", err)
	}
	n := 30
	pts := make([]sample, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		pts = append(pts, sample{
			x: 0.06*w + 0.88*w*f,
			y: 0.22 * h,
			t: int64(i) * 10,
		})
	}
	play(eng, 1, ink.PointerTouch, pts)
}

// drawCrosshatch interleaves two pointer sessions to show per-pointer
// isolation: the strokes commit independently, in up order.
func drawCrosshatch(eng *ink.Engine, w, h float64) {
	if err := eng.SetTool(ink.ToolPen); err != nil {
		log.Fatalf("Failed to select pen: %v", err)
	}

	n := 24
	down := func(id int, x, y float64) ink.PointerEvent {
		return ink.PointerEvent{ID: id, Phase: ink.PhaseDown, Type: ink.PointerTouch, X: x, Y: y}
	}
	move := func(id int, x, y float64, t int64) ink.PointerEvent {
		return ink.PointerEvent{ID: id, Phase: ink.PhaseMove, Type: ink.PointerTouch, X: x, Y: y, TimeMs: t}
	}
	up := func(id int, x, y float64, t int64) ink.PointerEvent {
		return ink.PointerEvent{ID: id, Phase: ink.PhaseUp, Type: ink.PointerTouch, X: x, Y: y, TimeMs: t}
	}

	events := []ink.PointerEvent{down(10, 0.2*w, 0.75*h), down(11, 0.4*w, 0.75*h)}
	for i := 1; i < n; i++ {
		f := float64(i) / float64(n)
		t := int64(i) * 11
		events = append(events,
			move(10, 0.2*w+0.15*w*f, 0.75*h+0.12*h*f, t),
			move(11, 0.4*w-0.15*w*f, 0.75*h+0.12*h*f, t),
		)
	}
	events = append(events,
		up(10, 0.35*w, 0.87*h, int64(n)*11),
		up(11, 0.25*w, 0.87*h, int64(n)*11),
	)

	for _, ev := range events {
		if err := eng.HandlePointer(ev); err != nil {
			log.Fatalf("Pointer event failed: %v", err)
		}
	}
}

// demoCancel starts a stroke and cancels it; the surface must not change.
func demoCancel(eng *ink.Engine, w, h float64) {
	before := eng.Surface().StrokeCount()
	events := []ink.PointerEvent{
		{ID: 7, Phase: ink.PhaseDown, X: 0.5 * w, Y: 0.5 * h},
		{ID: 7, Phase: ink.PhaseMove, X: 0.55 * w, Y: 0.55 * h, TimeMs: 16},
		{ID: 7, Phase: ink.PhaseCancel},
	}
	for _, ev := range events {
		if err := eng.HandlePointer(ev); err != nil {
			log.Fatalf("Pointer event failed: %v", err)
		}
	}
	if got := eng.Surface().StrokeCount(); got != before {
		log.Fatalf("Cancelled stroke reached the surface: %d -> %d strokes", before, got)
	}
	log.Printf("Cancelled stroke discarded cleanly")
}

// walkHistory undoes twice, redoes once, and reports the timeline.
func walkHistory(eng *ink.Engine) {
	for i := 0; i < 2; i++ {
		if err := eng.Undo(); err != nil {
			log.Fatalf("Undo failed: %v", err)
		}
	}
	if err := eng.Redo(); err != nil {
		log.Fatalf("Redo failed: %v", err)
	}
	log.Printf("History: %d undoable, %d redoable, %d strokes visible",
		eng.State().UndoDepth(), eng.State().RedoDepth(), eng.Surface().StrokeCount())
}

// exportAll writes the surface in every format, plus a 2x transparent
// PNG like a share sheet would request.
func exportAll(eng *ink.Engine, dir string) {
	formats := []ink.ExportFormat{ink.FormatPNG, ink.FormatJPEG, ink.FormatSVG, ink.FormatPDF}
	for _, f := range formats {
		opts := ink.ExportOptions{}
		if f == ink.FormatJPEG {
			opts.Quality = 0.9
		}
		writeExport(eng, filepath.Join(dir, "journal."+f.String()), f, opts)
	}
	writeExport(eng, filepath.Join(dir, "journal@2x.png"), ink.FormatPNG, ink.ExportOptions{
		Scale:          2,
		OmitBackground: true,
	})
}

func writeExport(eng *ink.Engine, path string, format ink.ExportFormat, opts ink.ExportOptions) {
	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	if err := eng.Export(out, format, opts); err != nil {
		out.Close()
		log.Fatalf("Export %s failed: %v", format, err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", path, err)
	}
	log.Printf("Exported %s", path)
}

// persistDemo saves the page, scribbles over it, and loads it back.
func persistDemo(eng *ink.Engine, dir string, w, h float64) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", dir, err)
	}
	// hackpadfs paths are unrooted slash paths
	root := strings.TrimPrefix(filepath.ToSlash(abs), "/")

	st, err := store.NewFileStore(hackos.NewFS(), root)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	const key = "journal-page"

	if err := eng.SaveTo(ctx, st, key); err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	saved := eng.Surface().StrokeCount()

	play(eng, 1, ink.PointerMouse, []sample{
		{x: 0.1 * w, y: 0.1 * h},
		{x: 0.3 * w, y: 0.3 * h, t: 20},
		{x: 0.5 * w, y: 0.15 * h, t: 40},
	})

	if err := eng.LoadFrom(ctx, st, key); err != nil {
		log.Fatalf("Load failed: %v", err)
	}
	if got := eng.Surface().StrokeCount(); got != saved {
		log.Fatalf("Load mismatch: saved %d strokes, loaded %d", saved, got)
	}

	keys, err := st.List(ctx)
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}
	log.Printf("Store holds %v; surface restored to %d strokes", keys, saved)
}
