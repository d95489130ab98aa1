// Package isovist implements the isovist engine (spec.md §4.F): context
// construction over obstacle and attraction geometry, and per-origin
// visibility-polygon computation by angular ray casting.
package isovist

import (
	"math"
	"sort"

	"github.com/placesyntax/pstgo/geom"
)

// Context indexes obstacle-polygon edges and attraction entities in a
// uniform grid so repeated CalculateIsovist calls from many origins
// share one broad-phase index (spec.md §4.F, "Context construction").
type Context struct {
	edges         []geom.Segment
	edgeOwner     []int
	grid          *geom.Grid
	points        []geom.Point
	polyCentroids []geom.Point
}

// NewContext builds a Context from obstacle polygon rings, raw
// attraction points, and attraction polygon rings (indexed by their
// centroid, per spec.md §4.F: "attraction polygon centroids").
func NewContext(obstacles [][]geom.Point, attractionPoints []geom.Point, attractionPolygons [][]geom.Point) *Context {
	bounds := geom.EmptyBBox()
	var edges []geom.Segment
	var owner []int
	for oi, ring := range obstacles {
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			edges = append(edges, geom.Segment{A: a, B: b})
			owner = append(owner, oi)
			bounds.ExpandPoint(a)
			bounds.ExpandPoint(b)
		}
	}
	for _, p := range attractionPoints {
		bounds.ExpandPoint(p)
	}
	centroids := make([]geom.Point, len(attractionPolygons))
	for i, ring := range attractionPolygons {
		centroids[i] = geom.Centroid(ring)
		bounds.ExpandPoint(centroids[i])
	}
	if !bounds.Valid() {
		bounds = geom.BBox{}
	}
	grid := geom.NewGrid(bounds, 0)
	for i, e := range edges {
		grid.Insert(int32(i), geom.NewBBox(e.A, e.B))
	}
	return &Context{edges: edges, edgeOwner: owner, grid: grid, points: attractionPoints, polyCentroids: centroids}
}

func (c *Context) candidateEdges(origin geom.Point, radius float64) []int {
	box := geom.BBox{MinX: origin.X - radius, MinY: origin.Y - radius, MaxX: origin.X + radius, MaxY: origin.Y + radius}
	ids := c.grid.Query(box)
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// Options parameterizes one isovist query (spec.md §4.F).
type Options struct {
	Origin geom.Point
	Radius float64
	// FOVDegrees is φ in (0,360]; <=0 or >360 is treated as a full 360°
	// isovist.
	FOVDegrees float64
	// LookDirectionDegrees is d, the FOV's bisecting direction.
	LookDirectionDegrees float64
	// PerimeterSegmentCount is S, the number of evenly spaced rays cast
	// across the free (non-obstructed) boundary.
	PerimeterSegmentCount int
}

// Result is one isovist query's output (spec.md §4.F step 5).
type Result struct {
	// Polygon is the isovist boundary, counter-clockwise.
	Polygon []geom.Point
	Area    float64
	// ObstacleHits, AttractionPointHits, AttractionPolygonHits list the
	// indices of entities the ray set touched or whose position falls
	// within the resulting polygon.
	ObstacleHits          []int
	AttractionPointHits   []int
	AttractionPolygonHits []int
}

// Calculate runs spec.md §4.F's isovist algorithm: candidate-edge
// culling, angular ray casting (perimeter rays plus exact-corner rays
// through every candidate obstacle edge endpoint), FOV clipping, and
// circle-arc enlargement for unobstructed rays.
//
// Complexity: O(C*R) where C is the number of rays cast and R the
// number of candidate obstacle edges, i.e. O((S+2E)*E) worst case.
func Calculate(ctx *Context, opts Options) Result {
	fov := opts.FOVDegrees
	if fov <= 0 || fov > 360 {
		fov = 360
	}
	full := fov >= 360-1e-9
	look := opts.LookDirectionDegrees * math.Pi / 180
	half := fov * math.Pi / 360

	segCount := opts.PerimeterSegmentCount
	if segCount < 3 {
		segCount = 3
	}

	candidates := ctx.candidateEdges(opts.Origin, opts.Radius)

	var angles []float64
	if full {
		for i := 0; i < segCount; i++ {
			angles = append(angles, 2*math.Pi*float64(i)/float64(segCount))
		}
	} else {
		for i := 0; i <= segCount; i++ {
			t := float64(i) / float64(segCount)
			angles = append(angles, look-half+t*2*half)
		}
	}
	for _, ei := range candidates {
		e := ctx.edges[ei]
		for _, p := range [2]geom.Point{e.A, e.B} {
			d := p.Sub(opts.Origin)
			if d.Length() > opts.Radius+geom.Epsilon {
				continue
			}
			a := d.Angle()
			if full || angleInFOV(a, look, half) {
				angles = append(angles, a, a+1e-6, a-1e-6)
			}
		}
	}
	angles = normalizeAndDedup(angles, full, look, half)

	enlarge := enlargementFactor(segCount)
	obstacleHitSet := map[int]bool{}
	poly := make([]geom.Point, 0, len(angles)+1)
	for _, a := range angles {
		dir := geom.Point{X: math.Cos(a), Y: math.Sin(a)}
		best := math.Inf(1)
		hit := -1
		for _, ei := range candidates {
			t, ok := rayIntersect(opts.Origin, dir, ctx.edges[ei])
			if !ok || t > opts.Radius+geom.Epsilon {
				continue
			}
			if t < best {
				best, hit = t, ei
			}
		}
		if hit >= 0 {
			poly = append(poly, opts.Origin.Add(dir.Scale(best)))
			obstacleHitSet[ctx.edgeOwner[hit]] = true
		} else {
			poly = append(poly, opts.Origin.Add(dir.Scale(opts.Radius*enlarge)))
		}
	}
	if !full {
		poly = append([]geom.Point{opts.Origin}, poly...)
	}

	return Result{
		Polygon:               poly,
		Area:                  geom.Area(poly),
		ObstacleHits:          sortedIntKeys(obstacleHitSet),
		AttractionPointHits:   hitTest(ctx.points, poly),
		AttractionPolygonHits: hitTest(ctx.polyCentroids, poly),
	}
}

// enlargementFactor returns the radius-enlargement factor for an
// S-sided regular polygon so its area equals a true circle of the same
// nominal radius (spec.md §4.F step 4).
func enlargementFactor(s int) float64 {
	n := float64(s)
	return math.Sqrt(math.Pi / (n * math.Sin(math.Pi/n) * math.Cos(math.Pi/n)))
}

// rayIntersect finds the distance t>=0 along the ray (origin, dir) where
// it meets segment seg, using the same parametric cross-product
// formulation as geom.SegmentIntersect specialized to an unbounded
// ray (dir need not be unit length for the math to hold, but Calculate
// always passes a unit vector so t is a true distance).
func rayIntersect(origin, dir geom.Point, seg geom.Segment) (float64, bool) {
	v := seg.Vector()
	denom := dir.Cross(v)
	if math.Abs(denom) < geom.Epsilon {
		return 0, false
	}
	qp := seg.A.Sub(origin)
	t := qp.Cross(v) / denom
	u := qp.Cross(dir) / denom
	if t < -geom.Epsilon || u < -geom.Epsilon || u > 1+geom.Epsilon {
		return 0, false
	}
	if t < 0 {
		t = 0
	}
	return t, true
}

func angleInFOV(a, look, half float64) bool {
	return math.Abs(normalizeAngle(a-look)) <= half+1e-9
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// normalizeAndDedup clips angles to the FOV range (adding the two
// angular-limit rays when the FOV is partial, per spec.md §4.F step 4),
// sorts them, and removes near-duplicates.
func normalizeAndDedup(angles []float64, full bool, look, half float64) []float64 {
	if !full {
		angles = append(angles, look-half, look+half)
	}
	adjusted := make([]float64, 0, len(angles))
	for _, a := range angles {
		if full {
			a = normalizeAngle(a)
		} else if a < look-half {
			a = look - half
		} else if a > look+half {
			a = look + half
		}
		adjusted = append(adjusted, a)
	}
	sort.Float64s(adjusted)
	out := adjusted[:0:0]
	for i, a := range adjusted {
		if i == 0 || a-out[len(out)-1] > 1e-9 {
			out = append(out, a)
		}
	}
	return out
}

func hitTest(points []geom.Point, poly []geom.Point) []int {
	if len(poly) < 3 {
		return nil
	}
	var out []int
	for i, p := range points {
		if geom.PointInPolygon(p, poly) {
			out = append(out, i)
		}
	}
	return out
}

func sortedIntKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
