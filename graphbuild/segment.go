package graphbuild

import (
	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
)

// BuildSegmentGraph implements spec.md §4.B's "Segment graph build":
// each input line is one segment vertex; edges connect segments that
// share a junction, carrying the turn angle (0-180 degrees) between
// them.
//
// Complexity: O(L + J) — every junction contributes one edge per
// ordered pair of its incident lines.
func BuildSegmentGraph(axial *core.AxialGraph) *core.SegmentGraph {
	n := axial.LineCount()
	edges := make([][]core.SegmentEdge, n)

	for jid := 0; jid < axial.JunctionCount(); jid++ {
		j, err := axial.Junction(core.JunctionID(jid))
		if err != nil {
			continue
		}
		for i, a := range j.Lines {
			for k, b := range j.Lines {
				if i == k {
					continue
				}
				angle := turnAngle(axial, a, b, j)
				edges[a] = append(edges[a], core.SegmentEdge{
					Other:        core.SegmentID(b),
					Junction:     core.JunctionID(jid),
					AngleDegrees: angle,
				})
			}
		}
	}
	return core.NewSegmentGraph(axial, edges)
}

// turnAngle computes the angle between line a's direction approaching
// junction j and line b's direction leaving it, using each line's
// far-endpoint-to-junction vector (spec.md §3: "0 straight, 180 U-turn").
func turnAngle(axial *core.AxialGraph, a, b core.LineID, j core.Junction) float64 {
	la, errA := axial.Line(a)
	lb, errB := axial.Line(b)
	if errA != nil || errB != nil {
		return 0
	}
	inbound := directionTowards(la, j.Position)
	outbound := directionAwayFrom(lb, j.Position)
	return geom.TurnAngleDegrees(inbound, outbound)
}

func directionTowards(l core.Line, junction core.Coordinate) geom.Point {
	a := geom.Point{X: l.A.X, Y: l.A.Y}
	b := geom.Point{X: l.B.X, Y: l.B.Y}
	j := geom.Point{X: junction.X, Y: junction.Y}
	if a.Distance(j) < b.Distance(j) {
		return j.Sub(b) // traveling from B towards A/junction
	}
	return j.Sub(a)
}

func directionAwayFrom(l core.Line, junction core.Coordinate) geom.Point {
	a := geom.Point{X: l.A.X, Y: l.A.Y}
	b := geom.Point{X: l.B.X, Y: l.B.Y}
	j := geom.Point{X: junction.X, Y: junction.Y}
	if a.Distance(j) < b.Distance(j) {
		return b.Sub(j) // continuing on towards B
	}
	return a.Sub(j)
}
