package ink

import "fmt"

// Surface is the retained drawing model: the committed strokes, the
// background, and a baked pixmap kept in sync with them. Strokes are
// appended by the engine at pointer-up and only ever removed wholesale by
// restoring a snapshot, so the baked pixmap can be updated incrementally
// on commit and rebuilt from scratch only when history rewinds.
type Surface struct {
	width      int
	height     int
	background RGBA
	strokes    []*Stroke
	baked      *Pixmap
	renderer   Renderer
}

// NewSurface creates an empty surface with a white background.
func NewSurface(width, height int, renderer Renderer) *Surface {
	if renderer == nil {
		renderer = NewSoftwareRenderer()
	}
	s := &Surface{
		width:      width,
		height:     height,
		background: White,
		renderer:   renderer,
	}
	s.baked = NewPixmap(width, height)
	s.baked.Clear(s.background)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Background returns the current background color.
func (s *Surface) Background() RGBA { return s.background }

// SetBackground replaces the background and rebakes.
func (s *Surface) SetBackground(c RGBA) error {
	s.background = c
	return s.bake()
}

// StrokeCount returns the number of committed strokes.
func (s *Surface) StrokeCount() int { return len(s.strokes) }

// Strokes returns the committed strokes in commit order. The slice is a
// copy; the strokes themselves are shared and must not be mutated.
func (s *Surface) Strokes() []*Stroke {
	out := make([]*Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// Baked returns the surface pixels with every committed stroke rendered.
// The pixmap is owned by the surface; callers that need to draw over it
// take a Clone.
func (s *Surface) Baked() *Pixmap { return s.baked }

// AddStroke commits a stroke and renders it onto the baked pixmap. The
// surface keeps its own clone, so the caller is free to reuse or mutate
// st afterward.
func (s *Surface) AddStroke(st *Stroke) error {
	if st == nil || len(st.Points) == 0 {
		return nil
	}
	st = st.Clone()
	s.strokes = append(s.strokes, st)
	if err := s.renderer.DrawStroke(s.baked, st); err != nil {
		return fmt.Errorf("ink: draw stroke: %w", err)
	}
	return nil
}

// Clear removes all strokes and repaints the background.
func (s *Surface) Clear() error {
	s.strokes = s.strokes[:0]
	return s.bake()
}

// Resize changes the surface dimensions and rebakes. Committed strokes
// keep their coordinates; content outside the new bounds is clipped, not
// discarded, so growing the surface again brings it back.
func (s *Surface) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	s.width = width
	s.height = height
	s.baked = NewPixmap(width, height)
	return s.bake()
}

// Restore replaces the entire surface content with a snapshot's. The
// caller passes ownership of the stroke slice.
func (s *Surface) Restore(width, height int, background RGBA, strokes []*Stroke) error {
	s.width = width
	s.height = height
	s.background = background
	s.strokes = strokes
	if s.baked == nil || s.baked.Width() != width || s.baked.Height() != height {
		s.baked = NewPixmap(width, height)
	}
	return s.bake()
}

// bake repaints the pixmap from scratch: background first, then every
// stroke in commit order.
func (s *Surface) bake() error {
	s.baked.Clear(s.background)
	for _, st := range s.strokes {
		if err := s.renderer.DrawStroke(s.baked, st); err != nil {
			return fmt.Errorf("ink: bake: %w", err)
		}
	}
	return nil
}
