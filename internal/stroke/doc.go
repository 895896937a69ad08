// Package stroke converts variable-width polylines into filled outlines.
//
// A finalized ink stroke carries a width at every vertex, so classic
// constant-width offsetting does not apply. Instead each segment becomes a
// trapezoid between its two per-vertex radii, and joins and caps become
// disks, wedges or extensions stamped over the seams. The result is a soup
// of closed loops with a single consistent orientation; filling it with the
// non-zero winding rule yields the union, so overlap inside one stroke
// never double-composites - a translucent highlighter stays uniform along
// its own length.
//
// # Caps
//
//   - CapRound: disk of the vertex radius over each endpoint
//   - CapSquare: quad extending half a width beyond the endpoint
//   - CapButt: flat end exactly at the endpoint
//
// # Joins
//
//   - JoinRound: disk of the vertex radius over each interior vertex
//   - JoinBevel: wedge triangles bridging adjacent trapezoid corners
//   - JoinMiter: bevel plus a sharp tip, limited by MiterLimit
//
// # Usage
//
//	ribs := []stroke.Rib{
//	    {P: stroke.Point{X: 0, Y: 0}, HalfWidth: 1.5},
//	    {P: stroke.Point{X: 40, Y: 10}, HalfWidth: 2.5},
//	}
//	lines := stroke.Outline(ribs, stroke.Options{Cap: stroke.CapRound, Join: stroke.JoinRound})
//
// The returned lines feed the raster package's non-zero fill directly.
package stroke
