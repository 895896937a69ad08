package ink

// SmoothedPoint is a point on the smoothed path with its interpolated
// pressure. Smoothed points are derived values; mutating them never feeds
// back into capture state.
type SmoothedPoint struct {
	Point
	Pressure float64
}

// DefaultFlattenTolerance is the curve flattening tolerance in pixels used
// when rendering smoothed paths.
const DefaultFlattenTolerance = 0.25

// Smoother incrementally converts raw input points into a corner-cutting
// quadratic path. Each interior raw point becomes the control point of a
// quadratic segment; the segment endpoint slides toward the next raw point
// by half the smoothing factor, so factor 0 reproduces the raw polyline and
// factor 1 cuts corners at segment midpoints.
//
// Work per added point is O(1): only the tail of the path is rewritten.
type Smoother struct {
	factor float64
	raw    []SmoothedPoint
	path   *Path
}

// NewSmoother creates a smoother with the given smoothing factor in [0, 1].
// Values outside the range are clamped.
func NewSmoother(factor float64) *Smoother {
	return &Smoother{
		factor: clamp01(factor),
		raw:    make([]SmoothedPoint, 0, 64),
		path:   NewPath(),
	}
}

// Factor returns the smoothing factor.
func (s *Smoother) Factor() float64 { return s.factor }

// Len returns the number of raw points accumulated.
func (s *Smoother) Len() int { return len(s.raw) }

// cutT maps the smoothing factor to the corner-cut interpolation parameter.
// Capped at 0.5 so segment endpoints stay inside the convex hull of each
// consecutive raw point triple.
func (s *Smoother) cutT() float64 { return 0.5 * s.factor }

// AddPoint appends a raw input point with its pressure. Consecutive
// duplicates are dropped so degenerate segments never enter the path.
func (s *Smoother) AddPoint(p Point, pressure float64) {
	if n := len(s.raw); n > 0 {
		const eps = 1e-6
		if p.Distance(s.raw[n-1].Point) < eps {
			s.raw[n-1].Pressure = pressure
			return
		}
	}

	s.raw = append(s.raw, SmoothedPoint{Point: p, Pressure: pressure})

	switch n := len(s.raw); n {
	case 1:
		s.path.MoveTo(p.X, p.Y)
	case 2:
		s.path.LineTo(p.X, p.Y)
	default:
		// The closing segment to the previous point becomes a quadratic
		// around it, then a fresh closing segment reaches the new point.
		// The closing run is straight but written as a quadratic with its
		// control on the chord, keeping the path quadratic-only after the
		// initial move.
		s.path.elements = s.path.elements[:len(s.path.elements)-1]
		ctrl := s.raw[n-2]
		end := ctrl.Point.Lerp(p, s.cutT())
		s.path.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
		mid := end.Lerp(p, 0.5)
		s.path.QuadraticTo(mid.X, mid.Y, p.X, p.Y)
	}
}

// Path returns the current curve description: a single open subpath ending
// at the last raw point. Two raw points yield one line segment; from three
// points on, every drawable element is a quadratic, the straight closing
// run included as a degenerate one. With fewer than two points the path is
// empty of drawable segments. The returned path is live; callers that
// retain it across AddPoint calls must Clone it.
func (s *Smoother) Path() *Path {
	if len(s.raw) < 2 {
		// A single point has no extent to draw.
		empty := NewPath()
		if len(s.raw) == 1 {
			empty.MoveTo(s.raw[0].X, s.raw[0].Y)
		}
		return empty
	}
	return s.path
}

// Points returns the smoothed path vertices with their pressures: the
// segment endpoints of the current path, including the first and last raw
// points.
func (s *Smoother) Points() []SmoothedPoint {
	n := len(s.raw)
	if n == 0 {
		return nil
	}
	out := make([]SmoothedPoint, 0, n)
	out = append(out, s.raw[0])
	if n == 1 {
		return out
	}
	t := s.cutT()
	for i := 1; i < n-1; i++ {
		end := s.raw[i].Point.Lerp(s.raw[i+1].Point, t)
		pres := lerpFloat(s.raw[i].Pressure, s.raw[i+1].Pressure, t)
		out = append(out, SmoothedPoint{Point: end, Pressure: pres})
	}
	out = append(out, s.raw[n-1])
	return out
}

// Flatten returns the smoothed path as a dense polyline with pressures
// interpolated along each segment by chord length. tolerance bounds the
// distance between the polyline and the true curve; zero or negative uses
// DefaultFlattenTolerance.
func (s *Smoother) Flatten(tolerance float64) []SmoothedPoint {
	if tolerance <= 0 {
		tolerance = DefaultFlattenTolerance
	}
	n := len(s.raw)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []SmoothedPoint{s.raw[0]}
	}

	out := make([]SmoothedPoint, 0, n*4)
	out = append(out, s.raw[0])
	cur := s.raw[0]
	t := s.cutT()

	scratch := make([]Point, 0, 16)
	for i := 1; i < n; i++ {
		var seg []Point
		var endPres float64
		if i < n-1 {
			end := s.raw[i].Point.Lerp(s.raw[i+1].Point, t)
			endPres = lerpFloat(s.raw[i].Pressure, s.raw[i+1].Pressure, t)
			q := QuadBez{P0: cur.Point, P1: s.raw[i].Point, P2: end}
			seg = q.Flatten(tolerance, scratch[:0])
		} else {
			endPres = s.raw[i].Pressure
			seg = append(scratch[:0], s.raw[i].Point)
		}
		out = appendWithPressure(out, cur, seg, endPres)
		cur = out[len(out)-1]
		scratch = seg[:0]
	}
	return out
}

// appendWithPressure appends seg to out, interpolating pressure from
// start.Pressure to endPres by cumulative chord length.
func appendWithPressure(out []SmoothedPoint, start SmoothedPoint, seg []Point, endPres float64) []SmoothedPoint {
	total := 0.0
	prev := start.Point
	for _, p := range seg {
		total += prev.Distance(p)
		prev = p
	}
	if total == 0 {
		for _, p := range seg {
			out = append(out, SmoothedPoint{Point: p, Pressure: endPres})
		}
		return out
	}
	cum := 0.0
	prev = start.Point
	for _, p := range seg {
		cum += prev.Distance(p)
		prev = p
		pres := lerpFloat(start.Pressure, endPres, cum/total)
		out = append(out, SmoothedPoint{Point: p, Pressure: pres})
	}
	return out
}

// Clear resets the smoother for a new stroke.
func (s *Smoother) Clear() {
	s.raw = s.raw[:0]
	s.path.Clear()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}
