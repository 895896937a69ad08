package ink

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vellumnote/ink/internal/blend"
)

// encodeSVG emits the stroke geometry as a standalone SVG document. Each
// stroke becomes one filled path built from the same outline loops the
// rasterizer fills, so vector output matches the rendered pixels exactly
// instead of approximating them with stroked centerlines.
func encodeSVG(w io.Writer, s *Surface, opts ExportOptions) error {
	scale := opts.scale()
	outW := scaledDim(s.width, scale)
	outH := scaledDim(s.height, scale)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		outW, outH, s.width, s.height)

	if !opts.OmitBackground {
		bg := s.background
		fmt.Fprintf(&b, "  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\"%s/>\n",
			svgRGB(bg), svgOpacity(bg.A))
	}

	for _, st := range s.strokes {
		if len(st.Points) == 0 {
			continue
		}
		loops := strokeLoops(st)
		if len(loops) == 0 {
			continue
		}
		var d strings.Builder
		for _, loop := range loops {
			for i, p := range loop {
				if i == 0 {
					d.WriteByte('M')
				} else {
					d.WriteByte('L')
				}
				d.WriteString(svgNum(p.X))
				d.WriteByte(' ')
				d.WriteString(svgNum(p.Y))
			}
			d.WriteByte('Z')
		}
		col := st.Config.Color
		alpha := col.A * st.Config.EffectiveOpacity()
		fmt.Fprintf(&b, "  <path d=\"%s\" fill=\"%s\"%s%s/>\n",
			d.String(), svgRGB(col), svgOpacity(alpha), svgBlend(styleFor(st.Tool).blend))
	}

	b.WriteString("</svg>\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("ink: write svg: %w", err)
	}
	return nil
}

func scaledDim(dim int, scale float64) int {
	out := int(math.Round(float64(dim) * scale))
	if out < 1 {
		out = 1
	}
	return out
}

// svgRGB formats the color channels without alpha; SVG takes opacity as
// a separate attribute.
func svgRGB(c RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp255(c.R*255)),
		uint8(clamp255(c.G*255)),
		uint8(clamp255(c.B*255)))
}

// svgOpacity returns a fill-opacity attribute, or nothing when opaque.
func svgOpacity(a float64) string {
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(" fill-opacity=\"%s\"", svgNum(a))
}

// svgBlend returns a style attribute for non-default blend modes. The
// SVG default matches blend.Normal.
func svgBlend(m blend.Mode) string {
	if m == blend.Multiply {
		return " style=\"mix-blend-mode:multiply\""
	}
	return ""
}

// svgNum formats a coordinate with trailing zeros trimmed, keeping
// documents compact at sub-pixel precision.
func svgNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
