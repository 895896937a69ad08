package raster

// AlphaRuns stores run-length-encoded coverage for one pixel row. The
// supersampled scanlines of a row accumulate into it before the row is
// blitted, so overlapping outline loops composite once, not per loop.
type AlphaRuns struct {
	// runs stores the length of each run. A zero value terminates the row.
	runs []uint16
	// alpha stores the coverage value for each run.
	alpha []uint8
}

// NewAlphaRuns creates a buffer for rows of the given width.
func NewAlphaRuns(width int) *AlphaRuns {
	if width <= 0 {
		width = 1
	}
	ar := &AlphaRuns{
		runs:  make([]uint16, width+1),
		alpha: make([]uint8, width+1),
	}
	ar.Reset(width)
	return ar
}

// catchOverflow converts accumulated coverage 0-256 to alpha 0-255.
func catchOverflow(alpha uint16) uint8 {
	if alpha > 256 {
		alpha = 256
	}
	// (alpha - (alpha >> 8)) maps 256 -> 255
	return uint8(alpha - (alpha >> 8))
}

// IsEmpty returns true if the row holds no coverage.
func (ar *AlphaRuns) IsEmpty() bool {
	if ar.runs[0] == 0 {
		return true
	}
	return ar.alpha[0] == 0 && ar.runs[ar.runs[0]] == 0
}

// Reset reinitializes the buffer for a new row.
func (ar *AlphaRuns) Reset(width int) {
	if width <= 0 {
		width = 1
	}
	if width > 65535 {
		width = 65535
	}
	ar.runs[0] = uint16(width)
	ar.runs[width] = 0 // terminator
	ar.alpha[0] = 0
}

// Add accumulates one supersampled span into the row.
//   - x: starting x coordinate in pixels
//   - startAlpha: partial coverage for the first pixel, if any
//   - middleCount: number of fully covered pixels
//   - stopAlpha: partial coverage for the last pixel, if any
//   - maxValue: per-scanline coverage for fully covered pixels
//   - offsetX: hint for where to resume scanning the run list
//
// Returns the offset hint for the next Add on the same row.
func (ar *AlphaRuns) Add(x int, startAlpha uint8, middleCount int, stopAlpha uint8, maxValue uint8, offsetX int) int {
	if x < 0 {
		return offsetX
	}

	runsOffset := offsetX
	alphaOffset := offsetX
	lastAlphaOffset := offsetX
	x -= offsetX

	if startAlpha != 0 {
		ar.breakRun(runsOffset, x, 1)

		tmp := uint16(ar.alpha[alphaOffset+x]) + uint16(startAlpha)
		ar.alpha[alphaOffset+x] = catchOverflow(tmp)

		runsOffset += x + 1
		alphaOffset += x + 1
		x = 0
	}

	if middleCount > 0 {
		ar.breakRun(runsOffset, x, middleCount)
		alphaOffset += x
		runsOffset += x
		x = 0

		for middleCount > 0 {
			a := catchOverflow(uint16(ar.alpha[alphaOffset]) + uint16(maxValue))
			ar.alpha[alphaOffset] = a

			n := int(ar.runs[runsOffset])
			if n <= 0 {
				break
			}
			if n > middleCount {
				n = middleCount
			}
			alphaOffset += n
			runsOffset += n
			middleCount -= n
		}

		lastAlphaOffset = alphaOffset
	}

	if stopAlpha != 0 {
		ar.breakRun(runsOffset, x, 1)
		alphaOffset += x
		ar.alpha[alphaOffset] += stopAlpha
		lastAlphaOffset = alphaOffset
	}

	return lastAlphaOffset
}

// breakRun splits runs at positions x and x+count so Add can modify the
// sub-range in place.
func (ar *AlphaRuns) breakRun(runsOffset, x, count int) {
	if count <= 0 {
		return
	}

	origX := x

	ro := runsOffset
	ao := runsOffset
	for x > 0 {
		n := int(ar.runs[ro])
		if n <= 0 {
			return
		}

		if x < n {
			ar.alpha[ao+x] = ar.alpha[ao]
			ar.runs[ro] = uint16(x)
			ar.runs[ro+x] = uint16(n - x)
			break
		}
		ro += n
		ao += n
		x -= n
	}

	ro = runsOffset + origX
	ao = runsOffset + origX
	x = count

	for {
		n := int(ar.runs[ro])
		if n <= 0 {
			break
		}

		if x < n {
			ar.alpha[ao+x] = ar.alpha[ao]
			ar.runs[ro] = uint16(x)
			ar.runs[ro+x] = uint16(n - x)
			break
		}

		x -= n
		if x == 0 {
			break
		}

		ro += n
		ao += n
	}
}

// Runs returns the runs slice.
func (ar *AlphaRuns) Runs() []uint16 {
	return ar.runs
}

// Alpha returns the alpha slice.
func (ar *AlphaRuns) Alpha() []uint8 {
	return ar.alpha
}
