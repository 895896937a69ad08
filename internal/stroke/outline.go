package stroke

import "math"

// Point represents a 2D point (local copy to avoid import cycle).
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) mul(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) length() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) distance(q Point) float64 { return p.sub(q).length() }

// perp rotates 90 degrees counter-clockwise.
func (p Point) perp() Point { return Point{-p.Y, p.X} }

func (p Point) normalize() (Point, bool) {
	l := p.length()
	if l == 0 {
		return Point{}, false
	}
	return Point{p.X / l, p.Y / l}, true
}

// Line is one segment of the produced outline soup.
type Line struct {
	P0, P1 Point
}

// Rib is one vertex of a variable-width polyline: a center point with the
// stroke's half-width at that point.
type Rib struct {
	P         Point
	HalfWidth float64
}

// Cap defines the shape of stroke endpoints.
type Cap uint8

const (
	// CapRound draws a disk of the endpoint radius over each end.
	CapRound Cap = iota
	// CapSquare extends the stroke half a width beyond each end.
	CapSquare
	// CapButt ends the stroke flat, exactly at the endpoint.
	CapButt
)

// Join defines how stroke segments connect at interior vertices.
type Join uint8

const (
	// JoinRound stamps a disk of the vertex radius over the seam.
	JoinRound Join = iota
	// JoinBevel bridges the seam with wedge triangles.
	JoinBevel
	// JoinMiter extends a sharp tip, falling back to bevel past MiterLimit.
	JoinMiter
)

// Options configures outline construction.
type Options struct {
	Cap  Cap
	Join Join

	// MiterLimit bounds miter tips as a multiple of the vertex half-width.
	// Zero means 4, the SVG default.
	MiterLimit float64

	// Tolerance is the maximum distance between a disk's polygon and the
	// true circle. Zero means 0.25.
	Tolerance float64
}

const (
	defaultMiterLimit = 4.0
	defaultTolerance  = 0.25

	// minHalfWidth keeps degenerate ribs from producing zero-area
	// geometry. Upstream validation rejects non-positive widths before
	// they reach this package.
	minHalfWidth = 0.05

	dedupeEps = 1e-9
)

// Outline converts a variable-width polyline into a soup of closed loops
// covering the stroked area, flattened to line segments for the
// rasterizer. All loops share one orientation, so filling with the
// non-zero winding rule produces their union. A single rib yields a dot.
func Outline(ribs []Rib, opts Options) []Line {
	return Flatten(Loops(ribs, opts))
}

// Loops returns the outline as closed polygon loops. The vector exporters
// use this form so exported geometry matches the rasterized geometry
// exactly.
func Loops(ribs []Rib, opts Options) [][]Point {
	clean := dedupe(ribs)
	if len(clean) == 0 {
		return nil
	}

	b := &builder{
		tol: opts.Tolerance,
		ml:  opts.MiterLimit,
	}
	if b.tol <= 0 {
		b.tol = defaultTolerance
	}
	if b.ml <= 0 {
		b.ml = defaultMiterLimit
	}

	if len(clean) == 1 {
		b.dot(clean[0], opts.Cap)
		return b.loops
	}

	for i := 0; i < len(clean)-1; i++ {
		b.segment(clean[i], clean[i+1])
	}
	for i := 1; i < len(clean)-1; i++ {
		b.join(clean[i-1], clean[i], clean[i+1], opts.Join)
	}
	b.capAt(clean[0], clean[1], opts.Cap)
	b.capAt(clean[len(clean)-1], clean[len(clean)-2], opts.Cap)

	return b.loops
}

// Flatten converts loops into the line soup the rasterizer consumes.
func Flatten(loops [][]Point) []Line {
	var lines []Line
	for _, loop := range loops {
		for i := range loop {
			j := (i + 1) % len(loop)
			lines = append(lines, Line{loop[i], loop[j]})
		}
	}
	return lines
}

// dedupe drops coincident ribs, keeping the widest radius at a repeat.
func dedupe(ribs []Rib) []Rib {
	out := make([]Rib, 0, len(ribs))
	for _, r := range ribs {
		if n := len(out); n > 0 && r.P.distance(out[n-1].P) < dedupeEps {
			if r.HalfWidth > out[n-1].HalfWidth {
				out[n-1].HalfWidth = r.HalfWidth
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func hw(r Rib) float64 {
	if r.HalfWidth < minHalfWidth {
		return minHalfWidth
	}
	return r.HalfWidth
}

type builder struct {
	loops [][]Point
	tol   float64
	ml    float64
}

// emitLoop appends a closed loop, normalizing its orientation so every
// loop winds the same way. Mixed orientations would cancel under the
// non-zero rule and punch holes where stamps overlap.
func (b *builder) emitLoop(pts []Point) {
	if len(pts) < 3 {
		return
	}
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	b.loops = append(b.loops, pts)
}

// segment emits the trapezoid between two ribs.
func (b *builder) segment(r0, r1 Rib) {
	d, ok := r1.P.sub(r0.P).normalize()
	if !ok {
		return
	}
	n := d.perp()
	h0, h1 := hw(r0), hw(r1)
	b.emitLoop([]Point{
		r0.P.add(n.mul(h0)),
		r1.P.add(n.mul(h1)),
		r1.P.sub(n.mul(h1)),
		r0.P.sub(n.mul(h0)),
	})
}

func (b *builder) join(prev, at, next Rib, j Join) {
	switch j {
	case JoinRound:
		b.disk(at.P, hw(at))
	case JoinBevel:
		b.bevel(prev, at, next)
	case JoinMiter:
		b.bevel(prev, at, next)
		b.miter(prev, at, next)
	}
}

// bevel emits wedge triangles on both sides of a vertex. The inner wedge
// lands inside the stroke and disappears into the union.
func (b *builder) bevel(prev, at, next Rib) {
	d0, ok0 := at.P.sub(prev.P).normalize()
	d1, ok1 := next.P.sub(at.P).normalize()
	if !ok0 || !ok1 {
		return
	}
	n0, n1 := d0.perp(), d1.perp()
	h := hw(at)
	b.emitLoop([]Point{at.P, at.P.add(n0.mul(h)), at.P.add(n1.mul(h))})
	b.emitLoop([]Point{at.P, at.P.sub(n0.mul(h)), at.P.sub(n1.mul(h))})
}

// miter emits the sharp tip on the outer side of a turn, unless the tip
// would exceed the miter limit.
func (b *builder) miter(prev, at, next Rib) {
	d0, ok0 := at.P.sub(prev.P).normalize()
	d1, ok1 := next.P.sub(at.P).normalize()
	if !ok0 || !ok1 {
		return
	}
	cross := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(cross) < 1e-12 {
		return // straight through, no corner
	}

	n0, n1 := d0.perp(), d1.perp()
	h := hw(at)
	var o0, o1 Point
	if cross > 0 {
		o0, o1 = n0.mul(-1), n1.mul(-1)
	} else {
		o0, o1 = n0, n1
	}

	p0 := at.P.add(o0.mul(h))
	p1 := at.P.add(o1.mul(h))
	m, ok := intersectLines(p0, d0, p1, d1)
	if !ok {
		return
	}
	if m.distance(at.P) > b.ml*h {
		return // beyond the limit, bevel stands
	}
	b.emitLoop([]Point{p0, m, p1, at.P})
}

// intersectLines finds the intersection of p+t*d and q+s*e.
func intersectLines(p, d, q, e Point) (Point, bool) {
	denom := d.X*e.Y - d.Y*e.X
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	t := ((q.X-p.X)*e.Y - (q.Y-p.Y)*e.X) / denom
	return p.add(d.mul(t)), true
}

// capAt emits the cap geometry for an endpoint. inner is the adjacent rib
// giving the outward direction.
func (b *builder) capAt(end, inner Rib, c Cap) {
	h := hw(end)
	switch c {
	case CapRound:
		b.disk(end.P, h)
	case CapSquare:
		d, ok := end.P.sub(inner.P).normalize()
		if !ok {
			return
		}
		n := d.perp()
		b.emitLoop([]Point{
			end.P.add(n.mul(h)),
			end.P.add(n.mul(h)).add(d.mul(h)),
			end.P.sub(n.mul(h)).add(d.mul(h)),
			end.P.sub(n.mul(h)),
		})
	case CapButt:
	}
}

// dot emits the mark for a single-rib stroke: a tap with no movement.
func (b *builder) dot(r Rib, c Cap) {
	h := hw(r)
	if c == CapSquare {
		b.emitLoop([]Point{
			{r.P.X - h, r.P.Y - h},
			{r.P.X + h, r.P.Y - h},
			{r.P.X + h, r.P.Y + h},
			{r.P.X - h, r.P.Y + h},
		})
		return
	}
	b.disk(r.P, h)
}

// disk emits a regular polygon approximating a circle, with enough
// segments that the polygon stays within tolerance of the true circle.
func (b *builder) disk(c Point, r float64) {
	if r < minHalfWidth {
		r = minHalfWidth
	}
	n := diskSegments(r, b.tol)
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{c.X + r*math.Cos(th), c.Y + r*math.Sin(th)}
	}
	b.emitLoop(pts)
}

func diskSegments(r, tol float64) int {
	if tol >= r {
		return 8
	}
	step := 2 * math.Acos(1-tol/r)
	n := int(math.Ceil(2 * math.Pi / step))
	if n < 8 {
		n = 8
	}
	if n > 64 {
		n = 64
	}
	return n
}
