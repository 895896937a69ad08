package ink

import "math"

// Geometry helpers for the smoothing and rendering pipeline.

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner, Max is the bottom-right corner.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// QuadBez represents a quadratic Bezier curve.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1) in Bernstein form.
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{
			P0: q.P0,
			P1: q.P0.Lerp(q.P1, 0.5),
			P2: mid,
		}, QuadBez{
			P0: mid,
			P1: q.P1.Lerp(q.P2, 0.5),
			P2: q.P2,
		}
}

// BoundingBox returns the axis-aligned bounding box of the control polygon.
// The curve itself is contained in the convex hull of its control points,
// so this box always contains the curve.
func (q QuadBez) BoundingBox() Rect {
	return NewRect(q.P0, q.P1).Union(NewRect(q.P1, q.P2))
}

// Flatten appends a polyline approximation of the curve to dst, excluding
// the start point P0. Subdivision stops once the control point is within
// tolerance of the P0-P2 chord.
func (q QuadBez) Flatten(tolerance float64, dst []Point) []Point {
	return q.flatten(tolerance, dst, 0)
}

const maxFlattenDepth = 16

func (q QuadBez) flatten(tolerance float64, dst []Point, depth int) []Point {
	if depth >= maxFlattenDepth || distanceToLine(q.P1, q.P0, q.P2) <= tolerance {
		return append(dst, q.P2)
	}
	left, right := q.Subdivide()
	dst = left.flatten(tolerance, dst, depth+1)
	return right.flatten(tolerance, dst, depth+1)
}

// distanceToLine returns the distance from p to the line through a and b.
func distanceToLine(p, a, b Point) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(d.Cross(p.Sub(a))) / length
}
