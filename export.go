package ink

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ExportFormat selects an export encoder.
type ExportFormat uint8

const (
	// FormatPNG encodes the rasterized surface as PNG.
	FormatPNG ExportFormat = iota
	// FormatJPEG encodes the rasterized surface as JPEG.
	FormatJPEG
	// FormatSVG emits the stroke geometry as an SVG document.
	FormatSVG
	// FormatPDF emits a print-ready single-page PDF.
	FormatPDF
)

// String returns the canonical format name.
func (f ExportFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatSVG:
		return "svg"
	case FormatPDF:
		return "pdf"
	default:
		return fmt.Sprintf("ExportFormat(%d)", uint8(f))
	}
}

func (f ExportFormat) valid() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatSVG, FormatPDF:
		return true
	}
	return false
}

// ParseExportFormat resolves a format name. The raster names and the
// generic "vector" and "print" names used by journaling hosts all
// resolve here.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "png", "raster-png":
		return FormatPNG, nil
	case "jpeg", "jpg", "raster-jpeg":
		return FormatJPEG, nil
	case "svg", "vector":
		return FormatSVG, nil
	case "pdf", "print":
		return FormatPDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DefaultJPEGQuality is used when ExportOptions.Quality is zero.
const DefaultJPEGQuality = 0.92

// ExportOptions tune an export. The zero value exports at 1:1 scale with
// the surface's own background included.
type ExportOptions struct {
	// Scale multiplies the output dimensions. Zero means 1.
	Scale float64

	// Quality in (0, 1] selects JPEG quality; zero means
	// DefaultJPEGQuality. Other formats ignore it.
	Quality float64

	// Background overrides the surface background for the duration of
	// the export. The original is restored on every exit path.
	Background *RGBA

	// OmitBackground leaves the background out entirely: PNG and SVG get
	// a transparent ground, PDF an unpainted page, and JPEG composites
	// over white since the format has no alpha channel.
	OmitBackground bool
}

func (o ExportOptions) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o ExportOptions) validate() error {
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("ink: export scale %g out of range", o.Scale)
	}
	if o.Quality < 0 || o.Quality > 1 || math.IsNaN(o.Quality) {
		return fmt.Errorf("ink: export quality %g outside [0,1]", o.Quality)
	}
	return nil
}

// Export writes the surface in the requested format. The surface is
// never durably mutated: a background override is applied for the
// duration of the encode and restored before Export returns, whether the
// encode succeeds or fails.
func (m *StateManager) Export(w io.Writer, format ExportFormat, opts ExportOptions) error {
	if !format.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.Background != nil {
		prev := m.surface.background
		if err := m.surface.SetBackground(*opts.Background); err != nil {
			return err
		}
		defer func() {
			if err := m.surface.SetBackground(prev); err != nil {
				Logger().Warn("restoring background after export", "error", err)
			}
		}()
	}
	return exportSurface(w, m.surface, format, opts)
}

// exportSurface dispatches to the per-format encoders.
func exportSurface(w io.Writer, s *Surface, format ExportFormat, opts ExportOptions) error {
	switch format {
	case FormatPNG:
		pm, err := exportPixmap(s, opts)
		if err != nil {
			return err
		}
		return encodePNG(w, pm, opts.scale())
	case FormatJPEG:
		pm, err := exportPixmap(s, opts)
		if err != nil {
			return err
		}
		return encodeJPEG(w, pm, opts.scale(), opts.Quality)
	case FormatSVG:
		return encodeSVG(w, s, opts)
	case FormatPDF:
		return encodePDF(w, s, opts)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// exportPixmap returns the pixels to encode: the baked surface as-is, or
// a fresh strokes-only render when the background is omitted.
func exportPixmap(s *Surface, opts ExportOptions) (*Pixmap, error) {
	if !opts.OmitBackground {
		return s.baked, nil
	}
	pm := NewPixmap(s.width, s.height)
	for _, st := range s.strokes {
		if err := s.renderer.DrawStroke(pm, st); err != nil {
			return nil, fmt.Errorf("ink: export render: %w", err)
		}
	}
	return pm, nil
}

func encodePNG(w io.Writer, pm *Pixmap, scale float64) error {
	img := scaleNRGBA(pm.ToImage(), scale)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("ink: encode png: %w", err)
	}
	return nil
}

func encodeJPEG(w io.Writer, pm *Pixmap, scale, quality float64) error {
	// JPEG has no alpha channel. Composite over white first so
	// translucent strokes keep their on-screen appearance.
	base := NewPixmap(pm.Width(), pm.Height())
	base.Clear(White)
	base.DrawOver(pm)

	img := scaleNRGBA(base.ToImage(), scale)
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: q}); err != nil {
		return fmt.Errorf("ink: encode jpeg: %w", err)
	}
	return nil
}

// scaleNRGBA resamples with Catmull-Rom, which stays sharp under the
// upscales print exports ask for.
func scaleNRGBA(src *image.NRGBA, scale float64) *image.NRGBA {
	if scale == 1 {
		return src
	}
	b := src.Bounds()
	dw := int(math.Round(float64(b.Dx()) * scale))
	dh := int(math.Round(float64(b.Dy()) * scale))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
