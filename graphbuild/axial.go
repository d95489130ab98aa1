package graphbuild

import (
	"sort"

	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
)

// LineInput is one caller-supplied line, given by its two endpoint
// coordinates (spec.md §3, "Line").
type LineInput struct {
	A, B geom.Point
}

// PointInput is one raw exogenous origin/destination (spec.md §3,
// "Points (optional)").
type PointInput struct {
	Position geom.Point
}

// PolygonInput is one polygon whose boundary is sampled into points at
// SampleInterval arc-length spacing (spec.md §3, "Point groups"); a
// PolygonInput with SampleInterval<=0 samples only its vertices.
type PolygonInput struct {
	Ring           []geom.Point
	SampleInterval float64
}

// BuildAxialGraph runs the axial graph build algorithm (spec.md §4.B):
// endpoint clustering into junctions, unlink-point junction-splitting,
// and point/polygon origin attachment.
//
// Does not mutate lines/unlinks/points/polygons. Fails with ErrNoLines if
// lines is empty, ErrTooManyEntities if any produced index would exceed
// the 32-bit handle space.
//
// Complexity: O(L log L) for endpoint clustering (grid-bucketed,
// near-linear in practice), plus O(P log L) for point attachment.
func BuildAxialGraph(lines []LineInput, unlinks []geom.Point, points []PointInput, polygons []PolygonInput, opts ...Option) (*core.AxialGraph, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if len(lines) > maxIndex/2 {
		return nil, ErrTooManyEntities
	}
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	cfg.unlinks = unlinks

	coreLines := make([]core.Line, len(lines))
	bounds := geom.EmptyBBox()
	for i, l := range lines {
		coreLines[i] = core.Line{
			A:      core.Coordinate{X: l.A.X, Y: l.A.Y},
			B:      core.Coordinate{X: l.B.X, Y: l.B.Y},
			Length: l.A.Distance(l.B),
		}
		bounds.ExpandPoint(l.A)
		bounds.ExpandPoint(l.B)
	}
	bounds.Pad(cfg.snapTolerance * 2)

	junctions := clusterJunctions(lines, coreLines, bounds, cfg)

	// wire each line's Junctions slice from the junctions we just built.
	for jid, j := range junctions {
		for _, lid := range j.Lines {
			coreLines[lid].Junctions = append(coreLines[lid].Junctions, core.JunctionID(jid))
		}
	}

	allPoints, pointGroups := sampleAndRawPoints(polygons, points)

	// The junction grid only needs to cover the lines; point attachment
	// must search up to cfg.pointSearch around every point too, so its
	// grid uses a separately widened bounding box (points may legitimately
	// sit well outside the lines' own bbox, e.g. a polygon origin drawn
	// alongside the street network).
	pointBounds := bounds
	for _, p := range allPoints {
		pointBounds.ExpandPoint(p.pos)
	}
	pointBounds.Pad(cfg.pointSearch)

	corePoints, err := attachPoints(allPoints, coreLines, pointBounds, cfg)
	if err != nil {
		return nil, err
	}

	return core.NewAxialGraph(coreLines, junctions, corePoints, pointGroups), nil
}

// clusterJunctions implements steps 1-3 of spec.md §4.B: grid-indexed
// endpoint clustering by snap tolerance, then unlink-point junction
// splitting.
func clusterJunctions(lines []LineInput, coreLines []core.Line, bounds geom.BBox, cfg config) []core.Junction {
	n := len(lines)
	// endpoint index e: even = A of line e/2, odd = B of line e/2.
	endpoints := make([]geom.Point, 2*n)
	for i, l := range lines {
		endpoints[2*i] = l.A
		endpoints[2*i+1] = l.B
	}

	grid := geom.NewGrid(bounds, cfg.gridCellSize)
	for i, p := range endpoints {
		grid.Insert(int32(i), geom.BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}

	uf := newUnionFind(len(endpoints))
	for i, p := range endpoints {
		for _, cand := range grid.QueryRadius(p, cfg.snapTolerance) {
			j := int(cand)
			if j <= i {
				continue
			}
			if p.Distance(endpoints[j]) <= cfg.snapTolerance {
				uf.union(i, j)
			}
		}
	}

	clusters := make(map[int][]int)
	for i := range endpoints {
		root := uf.find(i)
		clusters[root] = append(clusters[root], i)
	}

	// deterministic iteration order: sort cluster roots.
	roots := make([]int, 0, len(clusters))
	for r := range clusters {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	var junctions []core.Junction
	for _, r := range roots {
		members := clusters[r]
		lineSet := map[int]bool{}
		var pos geom.Point
		for _, e := range members {
			lineSet[e/2] = true
			pos = pos.Add(endpoints[e])
		}
		pos = pos.Scale(1 / float64(len(members)))
		if len(lineSet) < 2 {
			// a single line touching nothing else here is not a
			// junction (spec.md §3: "A junction is created wherever
			// >=2 lines share a common point").
			continue
		}
		lineIDs := make([]core.LineID, 0, len(lineSet))
		for lid := range lineSet {
			lineIDs = append(lineIDs, core.LineID(lid))
		}
		sort.Slice(lineIDs, func(i, j int) bool { return lineIDs[i] < lineIDs[j] })

		if split := splitForUnlink(pos, lineIDs, cfg); split != nil {
			junctions = append(junctions, split...)
			continue
		}
		junctions = append(junctions, core.Junction{
			Position: core.Coordinate{X: pos.X, Y: pos.Y},
			Lines:    lineIDs,
		})
	}
	return junctions
}

// splitForUnlink returns one singleton Junction per line if an unlink
// point in cfg.unlinks matches pos within cfg.unlinkTolerance, or nil if
// no split applies (spec.md §4.B step 3).
func splitForUnlink(pos geom.Point, lineIDs []core.LineID, cfg config) []core.Junction {
	if !cfg.hasUnlinkNear(pos) {
		return nil
	}
	out := make([]core.Junction, len(lineIDs))
	for i, lid := range lineIDs {
		out[i] = core.Junction{
			Position: core.Coordinate{X: pos.X, Y: pos.Y},
			Lines:    []core.LineID{lid},
		}
	}
	return out
}
