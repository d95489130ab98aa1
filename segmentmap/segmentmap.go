// Package segmentmap implements the segment-map cleanup pipeline
// (spec.md §4.E): snap coincident endpoints, split every polyline at
// its intersections with any other polyline, drop short dangling
// tails, and iteratively merge colinear degree-2 chains.
package segmentmap

import (
	"sort"

	"github.com/placesyntax/pstgo/geom"
)

// Polyline is one input section: an ordered sequence of coordinates.
type Polyline struct {
	Points []geom.Point
}

// Config carries the pipeline's four tolerances (spec.md §4.E).
type Config struct {
	// Snap is the point-merge tolerance for coincident endpoints.
	Snap float64
	// Tail is the minimum surviving length for a dangling degree-1 tail.
	Tail float64
	// Deviation is the maximum perpendicular deviation of a degree-2
	// junction's middle point from the outer-endpoint line, under which
	// the two segments are merged.
	Deviation float64
	// Extrude is the snap round-up slack applied when testing whether an
	// intersection coincides with a declared unlink point.
	Extrude float64
}

// Segment is one output edge, referencing Points by index, plus the
// index of the source polyline it was cut from (spec.md §4.E: "a segment
// table {p0_index, p1_index, source_polyline_index}").
type Segment struct {
	P0, P1, Source int
}

// Result is the cleaned segment map.
type Result struct {
	Points   []geom.Point
	Segments []Segment
	Unlinks  []geom.Point
}

type edge struct {
	a, b   geom.Point
	source int
}

// Clean runs the full pipeline: snap, split-at-intersections, tail-trim,
// colinear-merge, in that order (spec.md §4.E).
func Clean(polylines []Polyline, unlinks []geom.Point, cfg Config) Result {
	snapped := snapEndpoints(polylines, cfg.Snap)
	split := splitAtIntersections(snapped, unlinks, cfg.Extrude)
	trimmed := trimTails(split, cfg.Tail)
	merged := mergeColinear(trimmed, cfg.Deviation)
	return toResult(merged, unlinks)
}

// snapEndpoints clusters every polyline's first/last point within tol
// and replaces clustered endpoints with their cluster centroid,
// following the same grid+union-find clustering shape as
// graphbuild.BuildAxialGraph's junction clustering.
func snapEndpoints(polylines []Polyline, tol float64) []Polyline {
	if tol <= 0 || len(polylines) == 0 {
		return polylines
	}
	n := len(polylines)
	endpoints := make([]geom.Point, 2*n)
	bounds := geom.EmptyBBox()
	for i, p := range polylines {
		if len(p.Points) == 0 {
			continue
		}
		endpoints[2*i] = p.Points[0]
		endpoints[2*i+1] = p.Points[len(p.Points)-1]
		bounds.ExpandPoint(endpoints[2*i])
		bounds.ExpandPoint(endpoints[2*i+1])
	}
	bounds.Pad(tol * 2)
	grid := geom.NewGrid(bounds, tol*4)
	for i, p := range endpoints {
		grid.Insert(int32(i), geom.BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}

	uf := newUnionFind(len(endpoints))
	for i, p := range endpoints {
		for _, cand := range grid.QueryRadius(p, tol) {
			j := int(cand)
			if j <= i {
				continue
			}
			if p.Distance(endpoints[j]) <= tol {
				uf.union(i, j)
			}
		}
	}

	clusters := map[int][]int{}
	for i := range endpoints {
		r := uf.find(i)
		clusters[r] = append(clusters[r], i)
	}
	centroid := make([]geom.Point, len(endpoints))
	for _, members := range clusters {
		var sum geom.Point
		for _, m := range members {
			sum = sum.Add(endpoints[m])
		}
		c := sum.Scale(1 / float64(len(members)))
		for _, m := range members {
			centroid[m] = c
		}
	}

	out := make([]Polyline, n)
	for i, p := range polylines {
		if len(p.Points) == 0 {
			out[i] = p
			continue
		}
		pts := make([]geom.Point, len(p.Points))
		copy(pts, p.Points)
		pts[0] = centroid[2*i]
		pts[len(pts)-1] = centroid[2*i+1]
		out[i] = Polyline{Points: pts}
	}
	return out
}

// splitAtIntersections cuts every polyline's constituent segments at
// every intersection with a segment from a different source polyline,
// excluding intersections that coincide with a declared unlink point
// (within extrude tolerance). Intersection testing is a direct O(E^2)
// pairwise scan over the (typically modest) edge set produced by a
// segment-map cleanup job, rather than a grid-accelerated broad phase;
// see DESIGN.md for why this tradeoff was accepted here.
func splitAtIntersections(polylines []Polyline, unlinks []geom.Point, extrude float64) []edge {
	type rawEdge struct {
		a, b   geom.Point
		source int
	}
	var raw []rawEdge
	for src, p := range polylines {
		for i := 0; i+1 < len(p.Points); i++ {
			raw = append(raw, rawEdge{a: p.Points[i], b: p.Points[i+1], source: src})
		}
	}

	cuts := make([][]float64, len(raw))
	for i := range raw {
		cuts[i] = []float64{0, 1}
	}
	for i := 0; i < len(raw); i++ {
		for j := i + 1; j < len(raw); j++ {
			if raw[i].source == raw[j].source {
				continue
			}
			s1 := geom.Segment{A: raw[i].a, B: raw[i].b}
			s2 := geom.Segment{A: raw[j].a, B: raw[j].b}
			inter, ok := geom.SegmentIntersect(s1, s2)
			if !ok || inter.Collinear {
				continue
			}
			if isNearUnlink(inter.Point, unlinks, extrude) {
				continue
			}
			cuts[i] = append(cuts[i], inter.T)
			cuts[j] = append(cuts[j], inter.U)
		}
	}

	var out []edge
	for i, r := range raw {
		ts := dedupSorted(cuts[i])
		for k := 0; k+1 < len(ts); k++ {
			a := geom.Segment{A: r.a, B: r.b}.PointAt(ts[k])
			b := geom.Segment{A: r.a, B: r.b}.PointAt(ts[k+1])
			if a.Distance(b) < geom.Epsilon {
				continue
			}
			out = append(out, edge{a: a, b: b, source: r.source})
		}
	}
	return out
}

func isNearUnlink(p geom.Point, unlinks []geom.Point, tol float64) bool {
	for _, u := range unlinks {
		if p.Distance(u) <= tol {
			return true
		}
	}
	return false
}

func dedupSorted(ts []float64) []float64 {
	sort.Float64s(ts)
	out := ts[:0:0]
	for i, t := range ts {
		if i == 0 || t-out[len(out)-1] > geom.Epsilon {
			out = append(out, t)
		}
	}
	return out
}

// trimTails repeatedly removes edges whose far endpoint has degree 1
// (a dangling tail) and whose length is below tail, until no more edges
// qualify (spec.md §4.E step 3).
func trimTails(edges []edge, tail float64) []edge {
	if tail <= 0 {
		return edges
	}
	current := edges
	for {
		degree := endpointDegree(current)
		var kept []edge
		removedAny := false
		for _, e := range current {
			length := e.a.Distance(e.b)
			aDeg := degree[quantize(e.a)]
			bDeg := degree[quantize(e.b)]
			if length < tail && (aDeg == 1 || bDeg == 1) {
				removedAny = true
				continue
			}
			kept = append(kept, e)
		}
		current = kept
		if !removedAny {
			return current
		}
	}
}

// mergeColinear iteratively merges edge pairs sharing a degree-2 junction
// whose colinear deviation (perpendicular distance of the shared point to
// the outer-endpoint line) is <= deviation (spec.md §4.E step 4).
func mergeColinear(edges []edge, deviation float64) []edge {
	current := edges
	for {
		degree := endpointDegree(current)
		merged := false
		for i := 0; i < len(current); i++ {
			for j := i + 1; j < len(current); j++ {
				shared, ok := sharedEndpoint(current[i], current[j])
				if !ok || degree[quantize(shared)] != 2 {
					continue
				}
				outerA := otherEndpoint(current[i], shared)
				outerB := otherEndpoint(current[j], shared)
				if !colinear(outerA, shared, outerB, deviation) {
					continue
				}
				newEdge := edge{a: outerA, b: outerB, source: current[i].source}
				next := make([]edge, 0, len(current)-1)
				for k, e := range current {
					if k == i || k == j {
						continue
					}
					next = append(next, e)
				}
				next = append(next, newEdge)
				current = next
				merged = true
				break
			}
			if merged {
				break
			}
		}
		if !merged {
			return current
		}
	}
}

func sharedEndpoint(a, b edge) (geom.Point, bool) {
	switch {
	case quantize(a.a) == quantize(b.a), quantize(a.a) == quantize(b.b):
		return a.a, true
	case quantize(a.b) == quantize(b.a), quantize(a.b) == quantize(b.b):
		return a.b, true
	}
	return geom.Point{}, false
}

func otherEndpoint(e edge, shared geom.Point) geom.Point {
	if quantize(e.a) == quantize(shared) {
		return e.b
	}
	return e.a
}

// colinear reports whether mid's perpendicular distance from the line
// a-b is within deviation.
func colinear(a, mid, b geom.Point, deviation float64) bool {
	if a.Distance(b) < geom.Epsilon {
		return mid.Distance(a) <= deviation
	}
	return geom.ProjectPoint(mid, geom.Segment{A: a, B: b}).Distance <= deviation
}

func endpointDegree(edges []edge) map[[2]int64]int {
	degree := make(map[[2]int64]int)
	for _, e := range edges {
		degree[quantize(e.a)]++
		degree[quantize(e.b)]++
	}
	return degree
}

// quantize rounds a point to a stable integer key so near-identical
// floats (post-snap) compare equal as map keys.
func quantize(p geom.Point) [2]int64 {
	const scale = 1e6
	return [2]int64{int64(p.X * scale), int64(p.Y * scale)}
}

// toResult deduplicates edge endpoints into a Points array and filters
// unlinks down to those still coincident with a surviving junction.
func toResult(edges []edge, unlinks []geom.Point) Result {
	index := make(map[[2]int64]int)
	var points []geom.Point
	indexOf := func(p geom.Point) int {
		k := quantize(p)
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := len(points)
		index[k] = idx
		points = append(points, p)
		return idx
	}

	segments := make([]Segment, 0, len(edges))
	for _, e := range edges {
		segments = append(segments, Segment{P0: indexOf(e.a), P1: indexOf(e.b), Source: e.source})
	}

	var filtered []geom.Point
	for _, u := range unlinks {
		if _, ok := index[quantize(u)]; ok {
			filtered = append(filtered, u)
		}
	}
	return Result{Points: points, Segments: segments, Unlinks: filtered}
}
