package graphbuild

import (
	"math"

	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
)

type rawPoint struct {
	pos   geom.Point
	group core.PointGroupID
}

// sampleAndRawPoints emits polygon-sampled points first (each tagged
// with its source polygon group), followed by raw (non-polygon) points,
// matching spec.md §4.B: "Polygon-sampled points are emitted first."
func sampleAndRawPoints(polygons []PolygonInput, points []PointInput) ([]rawPoint, []core.PointGroup) {
	var out []rawPoint
	groups := make([]core.PointGroup, len(polygons))
	nextPointID := func() core.PointID { return core.PointID(len(out)) }

	for gi, poly := range polygons {
		sampled := geom.SampleRing(poly.Ring, poly.SampleInterval)
		ids := make([]core.PointID, 0, len(sampled))
		for _, p := range sampled {
			ids = append(ids, nextPointID())
			out = append(out, rawPoint{pos: p, group: core.PointGroupID(gi)})
		}
		groups[gi] = core.PointGroup{Points: ids}
	}
	for _, p := range points {
		out = append(out, rawPoint{pos: p.Position, group: core.PointGroupID(core.NoID)})
	}
	return out, groups
}

// attachPoints implements spec.md §4.B step 4: for each point, find the
// nearest line via the grid broad-phase then exact perpendicular-foot
// distance, within cfg.pointSearch. Points with no line within the
// search radius are dropped (they simply do not appear in the returned
// slice; spec.md does not define a pathological-input error for this
// case, only for structurally invalid axial input).
func attachPoints(points []rawPoint, lines []core.Line, bounds geom.BBox, cfg config) ([]core.Point, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if len(lines) > maxIndex {
		return nil, ErrTooManyEntities
	}

	grid := geom.NewGrid(bounds, cfg.gridCellSize)
	segs := make([]geom.Segment, len(lines))
	for i, l := range lines {
		a := geom.Point{X: l.A.X, Y: l.A.Y}
		b := geom.Point{X: l.B.X, Y: l.B.Y}
		segs[i] = geom.Segment{A: a, B: b}
		grid.Insert(int32(i), geom.NewBBox(a, b))
	}

	out := make([]core.Point, 0, len(points))
	for _, rp := range points {
		best := -1
		bestDist := math.Inf(1)
		var bestProj geom.ProjectResult
		for _, cand := range grid.QueryRadius(rp.pos, cfg.pointSearch) {
			i := int(cand)
			proj := geom.ProjectPoint(rp.pos, segs[i])
			if proj.Distance < bestDist {
				bestDist = proj.Distance
				best = i
				bestProj = proj
			}
		}
		if best < 0 || bestDist > cfg.pointSearch {
			continue
		}
		out = append(out, core.Point{
			Position:  core.Coordinate{X: rp.pos.X, Y: rp.pos.Y},
			Line:      core.LineID(best),
			FootParam: bestProj.T,
			Distance:  bestProj.Distance,
			Group:     rp.group,
		})
	}
	return out, nil
}
