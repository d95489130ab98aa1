package geom

import "math"

// SignedArea returns the signed area of a closed polygon given as an
// ordered ring of vertices (not required to repeat the first point at the
// end). Positive for counter-clockwise winding, negative for clockwise.
// Complexity: O(n).
func SignedArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

// Area returns the unsigned area of the polygon.
func Area(ring []Point) float64 { return math.Abs(SignedArea(ring)) }

// Centroid returns the area-weighted centroid of a simple polygon.
// Falls back to the arithmetic mean of vertices if the ring is degenerate
// (near-zero area), which is the correct limit for a point cluster.
// Complexity: O(n).
func Centroid(ring []Point) Point {
	a := SignedArea(ring)
	n := len(ring)
	if n == 0 {
		return Point{}
	}
	if math.Abs(a) < Epsilon {
		var sx, sy float64
		for _, p := range ring {
			sx += p.X
			sy += p.Y
		}
		return Point{sx / float64(n), sy / float64(n)}
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	f := 1 / (6 * a)
	return Point{cx * f, cy * f}
}

// PointInPolygon reports whether p lies within the ring, using the
// standard even-odd ray-casting rule. Boundary behavior is unspecified
// (the ray can pass exactly through a vertex), so a point on the boundary
// may be reported either inside or outside.
// Complexity: O(n).
func PointInPolygon(p Point, ring []Point) bool {
	n := len(ring)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}

// ConvexHull returns the convex hull of pts (counter-clockwise), using the
// monotone-chain algorithm. Duplicate and collinear interior points are
// dropped. Complexity: O(n log n).
func ConvexHull(pts []Point) []Point {
	if len(pts) < 3 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sortPoints(sorted)

	build := func(seq []Point) []Point {
		hull := make([]Point, 0, len(seq))
		for _, p := range seq {
			for len(hull) >= 2 && cross3(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}
	lower := build(sorted)
	reversed := make([]Point, len(sorted))
	for i, p := range sorted {
		reversed[len(sorted)-1-i] = p
	}
	upper := build(reversed)
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// ConvexHullArea returns the area enclosed by the convex hull of pts.
func ConvexHullArea(pts []Point) float64 {
	hull := ConvexHull(pts)
	if len(hull) < 3 {
		return 0
	}
	return Area(hull)
}

func cross3(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

func sortPoints(pts []Point) {
	// Simple insertion sort is adequate: ConvexHull is used on modest
	// reached-node sets (Reach analysis), never on raw line soup.
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && less(pts[j], pts[j-1]); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
}

func less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// SampleRing emits points along a closed polygon ring at every interval
// units of arc length, starting at the first vertex. Used to convert
// polygon-shaped origins/attractions into discrete graph points
// (spec.md §4.B, "polygon-sampled points").
//
// Returns at least one point per polygon, even if interval exceeds the
// ring's perimeter. Complexity: O(n + perimeter/interval).
func SampleRing(ring []Point, interval float64) []Point {
	n := len(ring)
	if n == 0 {
		return nil
	}
	if interval <= 0 {
		out := make([]Point, n)
		copy(out, ring)
		return out
	}
	var out []Point
	var carry float64
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		segLen := a.Distance(b)
		if segLen < Epsilon {
			continue
		}
		pos := carry
		for pos < segLen {
			out = append(out, a.Lerp(b, pos/segLen))
			pos += interval
		}
		carry = pos - segLen
	}
	if len(out) == 0 {
		out = append(out, ring[0])
	}
	return out
}
