package raster

// SupersampleShift controls supersampling level: 2 means 4x (1 << 2 = 4).
const SupersampleShift = 2

// SupersampleScale is the number of subpixels per pixel.
const SupersampleScale = 1 << SupersampleShift

// SupersampleMask is used to extract subpixel coordinates.
const SupersampleMask = SupersampleScale - 1

// AAPixmap is the destination for anti-aliased rendering. The coverage
// alpha modulates the color's own alpha at each pixel.
type AAPixmap interface {
	Width() int
	Height() int
	// BlendPixelAlpha blends a color with the existing pixel using the
	// given coverage alpha in 0-255.
	BlendPixelAlpha(x, y int, c RGBA, alpha uint8)
}

// SuperBlitter accumulates supersampled coverage into AlphaRuns and writes
// each finished pixel row to the destination.
type SuperBlitter struct {
	pixmap AAPixmap
	color  RGBA
	runs   *AlphaRuns

	// Current destination y coordinate (in pixel space).
	currIY int
	// Width of the region being blitted (in pixel space).
	width int
	// Left edge x coordinate (in pixel space).
	left int
	// Left edge x coordinate (in supersampled space).
	superLeft uint32

	// Current y in supersampled coordinates.
	currY int
	// Top boundary (in pixel space).
	top int

	// Offset hint for AlphaRuns.Add.
	offsetX int
}

// NewSuperBlitter creates a blitter for the intersection of the outline
// bounds with the destination clip. Returns nil if the region is empty.
func NewSuperBlitter(
	pixmap AAPixmap,
	color RGBA,
	boundsLeft, boundsTop, boundsRight, boundsBottom int,
	clipLeft, clipTop, clipRight, clipBottom int,
) *SuperBlitter {
	left := max(boundsLeft, clipLeft)
	top := max(boundsTop, clipTop)
	right := min(boundsRight, clipRight)
	bottom := min(boundsBottom, clipBottom)

	if left >= right || top >= bottom {
		return nil // clipped out
	}

	width := right - left
	if width <= 0 {
		return nil
	}

	return &SuperBlitter{
		pixmap:    pixmap,
		color:     color,
		runs:      NewAlphaRuns(width),
		currIY:    top - 1,
		width:     width,
		left:      left,
		superLeft: uint32(left << SupersampleShift),
		currY:     (top << SupersampleShift) - 1,
		top:       top,
	}
}

// BlitH receives one span in supersampled coordinates.
func (sb *SuperBlitter) BlitH(x, y uint32, width int) {
	if width <= 0 {
		return
	}

	iy := int(y >> SupersampleShift)

	if x < sb.superLeft {
		diff := int(sb.superLeft - x)
		if diff >= width {
			return // entire span is outside
		}
		width -= diff
		x = sb.superLeft
	}
	x -= sb.superLeft

	// Reset offset when moving to a new supersampled row
	if sb.currY != int(y) {
		sb.offsetX = 0
		sb.currY = int(y)
	}

	// Flush when moving to a new pixel row
	if iy != sb.currIY {
		sb.Flush()
		sb.currIY = iy
	}

	start := x
	stop := x + uint32(width)

	// Partial coverage for the first and last pixels of the span
	fb := start & SupersampleMask
	fe := stop & SupersampleMask
	n := int(stop>>SupersampleShift) - int(start>>SupersampleShift) - 1

	if n < 0 {
		// Start and end land in the same pixel
		fb = fe - fb
		n = 0
		fe = 0
	} else {
		if fb == 0 {
			n++
		} else {
			fb = SupersampleScale - fb
		}
	}

	// Coverage contribution of this scanline to fully covered pixels,
	// bounded to 0-63 for a 4x supersample.
	maxValue := uint8((1 << (8 - SupersampleShift)) - (((y & SupersampleMask) + 1) >> SupersampleShift))

	sb.offsetX = sb.runs.Add(
		int(x>>SupersampleShift),
		coverageToPartialAlpha(fb),
		n,
		coverageToPartialAlpha(fe),
		maxValue,
		sb.offsetX,
	)
}

// Flush writes the accumulated coverage row to the pixmap.
func (sb *SuperBlitter) Flush() {
	if sb.currIY < sb.top {
		return
	}

	if sb.runs.IsEmpty() {
		return
	}

	sb.blitAntiH(sb.left, sb.currIY)

	sb.runs.Reset(sb.width)
	sb.offsetX = 0
	sb.currIY = sb.top - 1
}

// blitAntiH writes a row of anti-aliased pixels from the accumulated runs.
func (sb *SuperBlitter) blitAntiH(x, y int) {
	runs := sb.runs.Runs()
	alpha := sb.runs.Alpha()

	i := 0
	for runs[i] > 0 {
		runLen := int(runs[i])
		a := alpha[i]

		if a > 0 {
			for j := 0; j < runLen; j++ {
				sb.pixmap.BlendPixelAlpha(x+i+j, y, sb.color, a)
			}
		}

		i += runLen
		if i >= len(runs) {
			break
		}
	}
}

// coverageToPartialAlpha converts fractional subpixel coverage (0-4) to an
// alpha contribution (0-64). AlphaRuns clamps the accumulated 256 to 255.
func coverageToPartialAlpha(coverage uint32) uint8 {
	aa := coverage << (8 - 2*SupersampleShift)
	return uint8(aa)
}
