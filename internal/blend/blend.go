// Package blend provides the compositing operations used when strokes are
// painted onto a surface. Colors are straight (non-premultiplied) RGBA with
// float components in [0, 1]; premultiplication happens inside Composite.
package blend

// RGBA is a straight-alpha color (local copy to avoid an import cycle with
// the root package).
type RGBA struct {
	R, G, B, A float64
}

// Mode selects how source pixels combine with the backdrop.
type Mode uint8

const (
	// Normal is plain source-over compositing.
	Normal Mode = iota
	// Multiply darkens the backdrop by the source, the behavior of a
	// translucent highlighter: overlapping strokes build up density.
	Multiply
)

// Composite combines a source color with a backdrop color. The separable
// blend function runs on color channels; the result is then source-over
// composited, so Normal reduces to ordinary alpha blending.
//
// Per channel: co = as*(1-ab)*Cs + as*ab*B(Cb,Cs) + (1-as)*ab*Cb, with the
// final color unpremultiplied by the output alpha.
func Composite(mode Mode, backdrop, source RGBA) RGBA {
	as := source.A
	ab := backdrop.A

	outA := as + ab*(1-as)
	if outA == 0 {
		return RGBA{}
	}

	blendCh := func(cb, cs float64) float64 {
		var b float64
		switch mode {
		case Multiply:
			b = cb * cs
		default:
			b = cs
		}
		co := as*(1-ab)*cs + as*ab*b + (1-as)*ab*cb
		return co / outA
	}

	return RGBA{
		R: blendCh(backdrop.R, source.R),
		G: blendCh(backdrop.G, source.G),
		B: blendCh(backdrop.B, source.B),
		A: outA,
	}
}
