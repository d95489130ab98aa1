// Package grouping implements Segment Grouping and Segment Group
// Integration (spec.md §4.D): grouping quotients a segment graph into
// connected components under an angle threshold (delegating to
// graphbuild's group-graph builder), and group integration replays
// Network Integration's {N, TD} accumulation on that quotient graph,
// mapping results back to the member segments.
package grouping

import (
	"context"
	"errors"

	"github.com/placesyntax/pstgo/analysis/integration"
	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/graphbuild"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// ErrNilGraph indicates a nil segment or group graph was passed in.
var ErrNilGraph = errors.New("grouping: graph is nil")

// Options configures Segment Grouping.
type Options struct {
	// AngleThreshold is θ₀ (spec.md §4.B): segment edges at or above this
	// turn angle never join two segments into the same group.
	AngleThreshold float64
	// SplitAtJunctions, when true, also refuses to group across a
	// junction of degree >= 3.
	SplitAtJunctions bool
	// Color requests a four-coloring of the resulting group adjacency
	// (spec.md §4.D: "optionally, a four-coloring of groups").
	Color bool
}

// Group runs Segment Grouping: it quotients seg into connected
// components under Options, assigning each segment a GroupID and,
// if Options.Color is set, a four-coloring of the group adjacency.
func Group(seg *core.SegmentGraph, opts Options) (*core.GroupGraph, error) {
	if seg == nil {
		return nil, ErrNilGraph
	}
	var gopts []graphbuild.GroupOption
	gopts = append(gopts, graphbuild.WithGroupAngleThreshold(opts.AngleThreshold))
	if opts.SplitAtJunctions {
		gopts = append(gopts, graphbuild.WithGroupJunctionSplit(true))
	}
	gg := graphbuild.BuildGroupGraph(seg, gopts...)
	if opts.Color {
		gg.FourColor()
	}
	return gg, nil
}

// groupAdapter exposes a core.GroupGraph's group-to-group edges as a
// traverse.Graph over GroupIDs, carrying both Steps (one hop per group
// edge) and Angular (the group edge's minimum turn angle) cost.
type groupAdapter struct{ g *core.GroupGraph }

func (a groupAdapter) NodeCount() int { return a.g.GroupCount() }

func (a groupAdapter) Edges(n traverse.NodeID) []traverse.Edge {
	edges, err := a.g.Edges(core.GroupID(n))
	if err != nil {
		return nil
	}
	out := make([]traverse.Edge, 0, len(edges))
	for _, e := range edges {
		cost := radius.Depth{}.Set(radius.TagSteps, 1).Set(radius.TagAngular, e.MinAngleDeg)
		out = append(out, traverse.Edge{To: traverse.NodeID(e.Other), Cost: cost})
	}
	return out
}

// GroupIntegration runs spec.md §4.D's Segment Group Integration: Network
// Integration's {N, TD} accumulation replayed on the group quotient
// graph, then mapped back to a per-segment result via gg.Segments.
func GroupIntegration(ctx context.Context, gg *core.GroupGraph, opts integration.Options) ([]integration.Result, error) {
	if gg == nil {
		return nil, ErrNilGraph
	}
	n := gg.GroupCount()
	nodes := make([]traverse.NodeID, n)
	for i := range nodes {
		nodes[i] = traverse.NodeID(i)
	}
	groupResults, err := integration.OverGraph(ctx, groupAdapter{g: gg}, nodes, radius.TagSteps, opts)
	if err != nil {
		return nil, err
	}

	out := make([]integration.Result, len(gg.Segments))
	for segID, gid := range gg.Segments {
		out[segID] = groupResults[gid]
	}
	return out, nil
}
