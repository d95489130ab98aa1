package geom

import "math"

// Point is a coordinate in the planar metric coordinate system shared by
// every pstgo component. Units are assumed to be meters by contract
// (spec.md §3); pstgo never interprets or converts units.
type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2-D cross product (z-component) of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length returns the Euclidean norm of p treated as a vector from the origin.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Lerp returns the point t of the way from p to q (t=0 -> p, t=1 -> q).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Angle returns the angle of p (as a vector from the origin) in radians,
// in (-π, π], per math.Atan2.
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Segment is an ordered pair of endpoints.
type Segment struct {
	A, B Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.A.Distance(s.B) }

// Vector returns B-A.
func (s Segment) Vector() Point { return s.B.Sub(s.A) }

// PointAt returns the point at parameter t along the segment (0 at A, 1 at B).
func (s Segment) PointAt(t float64) Point { return s.A.Lerp(s.B, t) }

// BBox is an axis-aligned bounding box. The zero value is a degenerate box
// at the origin (Valid reports true); use NewBBox or ExpandPoint from
// EmptyBBox to build one around actual geometry.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBBox returns a degenerate BBox suitable as the accumulator for a
// sequence of ExpandPoint/ExpandBBox calls.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// NewBBox returns the bounding box of a single segment.
func NewBBox(a, b Point) BBox {
	bb := EmptyBBox()
	bb.ExpandPoint(a)
	bb.ExpandPoint(b)
	return bb
}

// ExpandPoint grows the box, if necessary, to contain p.
func (b *BBox) ExpandPoint(p Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// ExpandBBox grows the box, if necessary, to contain other.
func (b *BBox) ExpandBBox(other BBox) {
	b.MinX = math.Min(b.MinX, other.MinX)
	b.MinY = math.Min(b.MinY, other.MinY)
	b.MaxX = math.Max(b.MaxX, other.MaxX)
	b.MaxY = math.Max(b.MaxY, other.MaxY)
}

// Pad grows the box by m on every side, in place.
func (b *BBox) Pad(m float64) {
	b.MinX -= m
	b.MinY -= m
	b.MaxX += m
	b.MaxY += m
}

// Width returns MaxX-MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the box has non-negative extent in both dimensions.
func (b BBox) Valid() bool { return b.MaxX >= b.MinX && b.MaxY >= b.MinY }

// Intersects reports whether two boxes overlap (including touching).
func (b BBox) Intersects(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Contains reports whether p lies within the box (inclusive).
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}
