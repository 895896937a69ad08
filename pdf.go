package ink

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/vellumnote/ink/internal/blend"
)

// encodePDF writes a print-ready single-page document. The page is sized
// one point per surface pixel before scaling, and strokes are emitted as
// the same filled outline loops the rasterizer uses, so print output
// matches screen geometry exactly.
func encodePDF(w io.Writer, s *Surface, opts ExportOptions) error {
	scale := opts.scale()
	pageW := float64(s.width) * scale
	pageH := float64(s.height) * scale

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.AddPage()

	if !opts.OmitBackground {
		bg := s.background
		pdf.SetFillColor(pdfChannel(bg.R), pdfChannel(bg.G), pdfChannel(bg.B))
		if bg.A < 1 {
			pdf.SetAlpha(bg.A, "Normal")
		}
		pdf.Rect(0, 0, pageW, pageH, "F")
		if bg.A < 1 {
			pdf.SetAlpha(1, "Normal")
		}
	}

	for _, st := range s.strokes {
		if len(st.Points) == 0 {
			continue
		}
		loops := strokeLoops(st)
		if len(loops) == 0 {
			continue
		}

		col := st.Config.Color
		pdf.SetFillColor(pdfChannel(col.R), pdfChannel(col.G), pdfChannel(col.B))
		mode := "Normal"
		if styleFor(st.Tool).blend == blend.Multiply {
			mode = "Multiply"
		}
		pdf.SetAlpha(col.A*st.Config.EffectiveOpacity(), mode)

		for _, loop := range loops {
			for i, p := range loop {
				if i == 0 {
					pdf.MoveTo(p.X*scale, p.Y*scale)
				} else {
					pdf.LineTo(p.X*scale, p.Y*scale)
				}
			}
			pdf.ClosePath()
		}
		pdf.DrawPath("f")
	}
	pdf.SetAlpha(1, "Normal")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("ink: encode pdf: %w", err)
	}
	return nil
}

func pdfChannel(v float64) int {
	return int(clamp255(v * 255))
}
