package ink

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/vellumnote/ink/internal/blend"
)

// Pixmap represents a rectangular pixel buffer with straight (non-
// premultiplied) 8-bit RGBA. The surface bakes committed strokes into one
// pixmap; the engine repaints in-progress strokes into another.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA order, straight alpha).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// DrawOver composites src over p with source-over blending. Both pixmaps
// must share dimensions; mismatched sources are ignored.
func (p *Pixmap) DrawOver(src *Pixmap) {
	if src == nil || src.width != p.width || src.height != p.height {
		return
	}
	for i := 0; i < len(p.data); i += 4 {
		sa := src.data[i+3]
		if sa == 0 {
			continue
		}
		if sa == 255 {
			copy(p.data[i:i+4], src.data[i:i+4])
			continue
		}
		s := blend.RGBA{
			R: float64(src.data[i+0]) / 255,
			G: float64(src.data[i+1]) / 255,
			B: float64(src.data[i+2]) / 255,
			A: float64(sa) / 255,
		}
		d := blend.RGBA{
			R: float64(p.data[i+0]) / 255,
			G: float64(p.data[i+1]) / 255,
			B: float64(p.data[i+2]) / 255,
			A: float64(p.data[i+3]) / 255,
		}
		out := blend.Composite(blend.Normal, d, s)
		p.data[i+0] = uint8(clamp255(out.R * 255))
		p.data[i+1] = uint8(clamp255(out.G * 255))
		p.data[i+2] = uint8(clamp255(out.B * 255))
		p.data[i+3] = uint8(clamp255(out.A * 255))
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(out.data, p.data)
	return out
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
