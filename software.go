package ink

import (
	"github.com/vellumnote/ink/internal/blend"
	"github.com/vellumnote/ink/internal/raster"
	istroke "github.com/vellumnote/ink/internal/stroke"
)

// softwareRenderer rasterizes strokes on the CPU with the scanline
// rasterizer. It is stateless apart from a cached rasterizer sized to the
// last target, so one instance can serve any number of surfaces.
type softwareRenderer struct {
	rast   *raster.Rasterizer
	width  int
	height int
}

// NewSoftwareRenderer creates the default CPU renderer.
func NewSoftwareRenderer() Renderer {
	return &softwareRenderer{}
}

// DrawStroke builds the stroke's outline loops and fills them in a single
// rasterizer pass. One pass per stroke means overlapping stamps within the
// stroke merge into uniform coverage instead of compounding, which keeps
// translucent tools even along their own length.
func (r *softwareRenderer) DrawStroke(pixmap *Pixmap, s *Stroke) error {
	if pixmap == nil || s == nil || len(s.Points) == 0 {
		return nil
	}
	bad := 0
	for _, p := range s.Points {
		debugAssert(p.Width > 0, "stroke point width %g must be positive", p.Width)
		if p.Width <= 0 {
			bad++
		}
	}
	if bad > 0 {
		// Unreachable through the engine; the width model floors at
		// MinWidth. The outline builder clamps these to its own minimum.
		Logger().Warn("non-positive stroke widths clamped", "points", bad, "tool", s.Tool)
	}

	lines := rasterLines(istroke.Flatten(strokeLoops(s)))
	if len(lines) == 0 {
		return nil
	}

	if r.rast == nil || r.width != pixmap.Width() || r.height != pixmap.Height() {
		r.width = pixmap.Width()
		r.height = pixmap.Height()
		r.rast = raster.NewRasterizer(r.width, r.height)
	}

	style := styleFor(s.Tool)
	adapter := &pixmapAdapter{
		pixmap: pixmap,
		mode:   style.blend,
		grain:  s.Config.Texture == TextureGrain,
	}

	col := s.Config.Color
	r.rast.FillAA(adapter, lines, raster.FillRuleNonZero, raster.RGBA{
		R: col.R,
		G: col.G,
		B: col.B,
		A: col.A * s.Config.EffectiveOpacity(),
	})
	return nil
}

// rasterLines converts outline segments into the rasterizer's line type.
func rasterLines(lines []istroke.Line) []raster.Line {
	out := make([]raster.Line, len(lines))
	for i, ln := range lines {
		out[i] = raster.Line{
			P0: raster.Point{X: ln.P0.X, Y: ln.P0.Y},
			P1: raster.Point{X: ln.P1.X, Y: ln.P1.Y},
		}
	}
	return out
}

// pixmapAdapter implements raster.AAPixmap on a Pixmap, folding coverage
// into the source alpha and compositing with the stroke's blend mode. The
// grain flag modulates coverage by the paper texture per pixel.
type pixmapAdapter struct {
	pixmap *Pixmap
	mode   blend.Mode
	grain  bool
}

func (a *pixmapAdapter) Width() int  { return a.pixmap.Width() }
func (a *pixmapAdapter) Height() int { return a.pixmap.Height() }

func (a *pixmapAdapter) BlendPixelAlpha(x, y int, c raster.RGBA, alpha uint8) {
	cov := float64(alpha) / 255
	if a.grain {
		cov *= grainFactor(x, y)
	}
	if cov <= 0 {
		return
	}

	dst := a.pixmap.GetPixel(x, y)
	out := blend.Composite(a.mode,
		blend.RGBA{R: dst.R, G: dst.G, B: dst.B, A: dst.A},
		blend.RGBA{R: c.R, G: c.G, B: c.B, A: c.A * cov},
	)
	a.pixmap.SetPixel(x, y, RGBA{R: out.R, G: out.G, B: out.B, A: out.A})
}
