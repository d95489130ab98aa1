// File: segmentgraph.go
// Role: SegmentGraph — the midpoint-vertex, turn-angle-edge graph derived
// from an AxialGraph (spec.md §3, "Segment graph"; §4.B, "Segment graph
// build"). Read-only after construction, same sharing contract as
// AxialGraph (spec.md §5).
package core

import "errors"

// ErrSegmentNotFound indicates a SegmentID outside [0, SegmentCount).
var ErrSegmentNotFound = errors.New("core: segment not found")

// SegmentEdge connects two segments that share a junction in the
// originating axial graph, carrying the turn angle between them.
type SegmentEdge struct {
	// Other is the segment at the far end of this edge.
	Other SegmentID
	// Junction is the axial-graph junction this edge passes through.
	Junction JunctionID
	// AngleDegrees is the turn angle in [0,180]: 0 is straight through,
	// 180 is a U-turn (spec.md §3).
	AngleDegrees float64
}

// SegmentGraph has exactly one segment vertex per axial-graph line, with
// edges at every point two lines meet at a junction.
type SegmentGraph struct {
	// Axial is the graph this segment graph was derived from; segment i
	// corresponds to Axial.Line(LineID(i)).
	Axial *AxialGraph
	edges [][]SegmentEdge
}

// NewSegmentGraph assembles a SegmentGraph over axial, with edges indexed
// per segment. len(edges) must equal axial.LineCount().
func NewSegmentGraph(axial *AxialGraph, edges [][]SegmentEdge) *SegmentGraph {
	return &SegmentGraph{Axial: axial, edges: edges}
}

// SegmentCount returns the number of segments (== Axial.LineCount()).
func (g *SegmentGraph) SegmentCount() int { return len(g.edges) }

// Edges returns the edges incident to segment id, in build order.
// Complexity: O(1) (returns the backing slice; callers must not mutate it).
func (g *SegmentGraph) Edges(id SegmentID) ([]SegmentEdge, error) {
	if int(id) < 0 || int(id) >= len(g.edges) {
		return nil, ErrSegmentNotFound
	}
	return g.edges[id], nil
}

// Degree returns the number of edges incident to segment id.
func (g *SegmentGraph) Degree(id SegmentID) int {
	if int(id) < 0 || int(id) >= len(g.edges) {
		return 0
	}
	return len(g.edges[id])
}
