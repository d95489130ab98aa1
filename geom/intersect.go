package geom

import "math"

// Epsilon is the default tolerance used for degeneracy checks (near-zero
// denominators, near-coincident endpoints) across geom's pure functions.
const Epsilon = 1e-9

// Intersection describes where two segments meet, in each segment's own
// parametric space (0 at A, 1 at B).
type Intersection struct {
	// T, U are the parametric positions along segment 1 and segment 2
	// respectively, each in [0,1] when the intersection is within both
	// segments' extents.
	T, U float64
	// Point is the resolved intersection point.
	Point Point
	// Collinear is true when the two segments are parallel and overlapping;
	// T and Point are then the first point of overlap (by segment 1's
	// order), and U is 0.
	Collinear bool
}

// SegmentIntersect computes the intersection of two segments, if any,
// returning ok=false when the segments are parallel and non-overlapping, or
// when the computed parameters fall outside [0,1] on either segment.
//
// Standard parametric-line formulation:
//
//	P = s1.A + t*(s1.B-s1.A)
//	P = s2.A + u*(s2.B-s2.A)
//
// Complexity: O(1).
func SegmentIntersect(s1, s2 Segment) (Intersection, bool) {
	r := s1.Vector()
	s := s2.Vector()
	denom := r.Cross(s)
	qp := s2.A.Sub(s1.A)

	if math.Abs(denom) < Epsilon {
		// Parallel. Collinear iff qp x r ~ 0.
		if math.Abs(qp.Cross(r)) >= Epsilon {
			return Intersection{}, false
		}
		return collinearOverlap(s1, s2, r)
	}

	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
		return Intersection{}, false
	}
	t = clamp01(t)
	u = clamp01(u)
	return Intersection{T: t, U: u, Point: s1.PointAt(t)}, true
}

func collinearOverlap(s1, s2 Segment, r Point) (Intersection, bool) {
	rr := r.Dot(r)
	if rr < Epsilon {
		return Intersection{}, false
	}
	t0 := s2.A.Sub(s1.A).Dot(r) / rr
	t1 := s2.B.Sub(s1.A).Dot(r) / rr
	lo, hi := t0, t1
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = math.Max(lo, 0)
	hi = math.Min(hi, 1)
	if lo > hi+Epsilon {
		return Intersection{}, false
	}
	t := clamp01(lo)
	return Intersection{T: t, U: 0, Point: s1.PointAt(t), Collinear: true}, true
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

// ProjectResult is the result of projecting a point onto a segment.
type ProjectResult struct {
	// T is the parametric foot position along the segment, clamped to [0,1].
	T float64
	// Foot is the projected point on the segment.
	Foot Point
	// Distance is the Euclidean distance from the query point to Foot.
	Distance float64
}

// ProjectPoint returns the perpendicular projection of p onto segment s,
// clamped to the segment's extent (i.e. the closest point on the segment,
// not the infinite line). Complexity: O(1).
func ProjectPoint(p Point, s Segment) ProjectResult {
	v := s.Vector()
	vv := v.Dot(v)
	if vv < Epsilon*Epsilon {
		// Degenerate (near zero-length) segment: foot is just A.
		return ProjectResult{T: 0, Foot: s.A, Distance: p.Distance(s.A)}
	}
	t := clamp01(p.Sub(s.A).Dot(v) / vv)
	foot := s.PointAt(t)
	return ProjectResult{T: t, Foot: foot, Distance: p.Distance(foot)}
}

// TurnAngleDegrees returns the angle in [0,180] degrees between two
// directed segments that meet at a shared point, measuring the deviation
// from continuing straight ahead (0 = straight through, 180 = a U-turn).
//
// inbound is the direction of travel arriving at the junction; outbound is
// the direction of travel leaving it.
func TurnAngleDegrees(inbound, outbound Point) float64 {
	li, lo := inbound.Length(), outbound.Length()
	if li < Epsilon || lo < Epsilon {
		return 0
	}
	cos := inbound.Dot(outbound) / (li * lo)
	cos = math.Max(-1, math.Min(1, cos))
	// angle between the two directions of travel; 0 means outbound continues
	// in the same direction as inbound (straight through).
	return math.Acos(cos) * 180 / math.Pi
}
