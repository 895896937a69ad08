package ink

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// TestParseExportFormat tests the canonical names and the host aliases.
func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ExportFormat
	}{
		{"png", FormatPNG},
		{"raster-png", FormatPNG},
		{"jpeg", FormatJPEG},
		{"jpg", FormatJPEG},
		{"raster-jpeg", FormatJPEG},
		{"svg", FormatSVG},
		{"vector", FormatSVG},
		{"pdf", FormatPDF},
		{"print", FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if err != nil {
				t.Fatalf("ParseExportFormat(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestParseExportFormatUnknown tests rejection of unsupported names.
func TestParseExportFormatUnknown(t *testing.T) {
	for _, in := range []string{"", "bmp", "PNG", "gif"} {
		if _, err := ParseExportFormat(in); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseExportFormat(%q) = %v, want ErrUnsupportedFormat", in, err)
		}
	}
}

// TestExportFormatString tests the name round-trip.
func TestExportFormatString(t *testing.T) {
	for _, f := range []ExportFormat{FormatPNG, FormatJPEG, FormatSVG, FormatPDF} {
		back, err := ParseExportFormat(f.String())
		if err != nil || back != f {
			t.Errorf("ParseExportFormat(%q) = %v, %v; want %v", f.String(), back, err, f)
		}
	}
}

// exportManager builds a surface with one committed stroke for encoder
// tests.
func exportManager(t *testing.T) (*Surface, *StateManager) {
	t.Helper()
	s, m := newTestManager(t)
	commit(t, s, m, lineStroke(5, 15, 35, 15, 6))
	return s, m
}

// TestExportPNG tests dimensions, content, and scaling of PNG output.
func TestExportPNG(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatPNG, ExportOptions{}); err != nil {
		t.Fatalf("Export(png) error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("decoded size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}

	// The stroke spine is dark, the far corner is background white.
	r, g, bl, _ := img.At(20, 15).RGBA()
	if r > 0x8000 && g > 0x8000 && bl > 0x8000 {
		t.Errorf("stroke pixel looks like background: %d %d %d", r, g, bl)
	}
	r, g, bl, _ = img.At(2, 2).RGBA()
	if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
		t.Errorf("background pixel not white: %d %d %d", r, g, bl)
	}
}

// TestExportPNGScaled tests that Scale multiplies output dimensions.
func TestExportPNGScaled(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatPNG, ExportOptions{Scale: 2}); err != nil {
		t.Fatalf("Export(png, 2x) error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("decoded size = %dx%d, want 80x60", b.Dx(), b.Dy())
	}
}

// TestExportPNGOmitBackground tests the transparent-ground render.
func TestExportPNGOmitBackground(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatPNG, ExportOptions{OmitBackground: true}); err != nil {
		t.Fatalf("Export(png, omit) error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("background pixel alpha = %d, want 0", a)
	}
	if _, _, _, a := img.At(20, 15).RGBA(); a == 0 {
		t.Error("stroke pixel is transparent")
	}
}

// TestExportJPEG tests that JPEG output decodes and composites over white.
func TestExportJPEG(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatJPEG, ExportOptions{Quality: 0.85, OmitBackground: true}); err != nil {
		t.Fatalf("Export(jpeg) error: %v", err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("decoded size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}

	// No alpha channel: the omitted background must read as white, not
	// black.
	r, g, bl, _ := img.At(2, 2).RGBA()
	if r < 0xe000 || g < 0xe000 || bl < 0xe000 {
		t.Errorf("omitted background pixel = %d %d %d, want near white", r, g, bl)
	}
}

// TestExportSVG tests document structure: geometry as filled paths, the
// background rect, and the highlighter's blend mode.
func TestExportSVG(t *testing.T) {
	s, m := newTestManager(t)
	commit(t, s, m, lineStroke(5, 15, 35, 15, 6))

	hl := DefaultBrush(ToolHighlighter)
	_ = s.AddStroke(&Stroke{
		Tool:   ToolHighlighter,
		Config: hl,
		Points: []StrokePoint{{X: 5, Y: 15, Width: 12}, {X: 35, Y: 15, Width: 12}},
	})
	if err := m.SaveState(); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatSVG, ExportOptions{Scale: 2}); err != nil {
		t.Fatalf("Export(svg) error: %v", err)
	}
	doc := buf.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="80" height="60" viewBox="0 0 40 30">`,
		`<rect width="100%" height="100%"`,
		`<path d="M`,
		`style="mix-blend-mode:multiply"`,
		`fill-opacity=`,
		`</svg>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("SVG missing %q\n%s", want, doc)
		}
	}
}

// TestExportSVGOmitBackground tests that the rect disappears.
func TestExportSVGOmitBackground(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatSVG, ExportOptions{OmitBackground: true}); err != nil {
		t.Fatalf("Export(svg, omit) error: %v", err)
	}
	if strings.Contains(buf.String(), "<rect") {
		t.Error("SVG contains a background rect despite OmitBackground")
	}
}

// TestExportPDF tests that the output is a well-formed PDF shell.
func TestExportPDF(t *testing.T) {
	_, m := exportManager(t)

	var buf bytes.Buffer
	if err := m.Export(&buf, FormatPDF, ExportOptions{}); err != nil {
		t.Fatalf("Export(pdf) error: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("PDF output starts with %q", out[:min(8, len(out))])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("PDF output missing trailer")
	}
}

// TestExportBackgroundOverride tests the override contract: the exported
// image shows the override, and the surface is back to its own background
// afterwards, so a second export shows the original.
func TestExportBackgroundOverride(t *testing.T) {
	s, m := exportManager(t)
	blue := Hex("#3498db")
	if err := s.SetBackground(blue); err != nil {
		t.Fatalf("SetBackground() error: %v", err)
	}

	white := White
	var buf bytes.Buffer
	if err := m.Export(&buf, FormatPNG, ExportOptions{Background: &white}); err != nil {
		t.Fatalf("Export(override) error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	r, g, bl, _ := img.At(2, 2).RGBA()
	if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
		t.Errorf("override export corner = %d %d %d, want white", r, g, bl)
	}

	if s.Background() != blue {
		t.Fatalf("surface background = %+v after export, want %+v", s.Background(), blue)
	}

	buf.Reset()
	if err := m.Export(&buf, FormatPNG, ExportOptions{}); err != nil {
		t.Fatalf("second Export() error: %v", err)
	}
	img, err = png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if got := FromColor(img.At(2, 2)); !colorNear(got, blue, 0.02) {
		t.Errorf("second export corner = %+v, want %+v", got, blue)
	}
}

// TestExportBackgroundRestoredOnFailure tests the restore guarantee when
// the encode itself fails.
func TestExportBackgroundRestoredOnFailure(t *testing.T) {
	s, m := exportManager(t)
	orig := s.Background()

	red := RGB(1, 0, 0)
	err := m.Export(failWriter{}, FormatPNG, ExportOptions{Background: &red})
	if err == nil {
		t.Fatal("Export() to a failing writer succeeded")
	}
	if s.Background() != orig {
		t.Errorf("surface background = %+v after failed export, want %+v", s.Background(), orig)
	}
}

// TestExportInvalidOptions tests option validation.
func TestExportInvalidOptions(t *testing.T) {
	_, m := exportManager(t)

	tests := []struct {
		name string
		opts ExportOptions
	}{
		{"negative scale", ExportOptions{Scale: -1}},
		{"quality above one", ExportOptions{Quality: 1.5}},
		{"negative quality", ExportOptions{Quality: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := m.Export(&buf, FormatPNG, tt.opts); err == nil {
				t.Error("Export() accepted invalid options")
			}
		})
	}
}

// TestExportUnknownFormat tests rejection of formats outside the enum.
func TestExportUnknownFormat(t *testing.T) {
	_, m := exportManager(t)
	var buf bytes.Buffer
	err := m.Export(&buf, ExportFormat(99), ExportOptions{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Export(99) = %v, want ErrUnsupportedFormat", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("sink closed")
}
