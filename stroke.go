package ink

// StrokePoint is one vertex of a finalized stroke with the width the brush
// resolved at that vertex. Widths are baked at capture time so replaying a
// snapshot never depends on the brush configuration that produced it.
type StrokePoint struct {
	X, Y  float64
	Width float64
}

// Stroke is a finalized stroke: the durable primitive committed to a
// surface when a pointer lifts. Strokes are never mutated after commit;
// undo removes whole strokes and redo restores them.
type Stroke struct {
	Tool   ToolKind
	Config BrushConfig
	Points []StrokePoint
}

// Bounds returns the stroke's bounding box including stroke width.
func (s *Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	first := Pt(s.Points[0].X, s.Points[0].Y)
	r := NewRect(first, first)
	maxW := 0.0
	for _, p := range s.Points {
		r = r.Union(NewRect(Pt(p.X, p.Y), Pt(p.X, p.Y)))
		if p.Width > maxW {
			maxW = p.Width
		}
	}
	return r.Expand(maxW / 2)
}

// Clone returns a deep copy. Surfaces clone strokes on commit so snapshot
// data can never alias live capture buffers.
func (s *Stroke) Clone() *Stroke {
	pts := make([]StrokePoint, len(s.Points))
	copy(pts, s.Points)
	return &Stroke{Tool: s.Tool, Config: s.Config, Points: pts}
}
