// Package integration implements Network Integration, Angular
// Integration, and Angular Choice (spec.md §4.D). All three drive the
// generalized traversal kernel once per origin and reduce its result to
// an {N, TD} accumulator pair; Angular Choice instead delegates to the
// betweenness package's Brandes implementation, since "choice" is
// defined as a betweenness count under Angular depth (spec.md §4.D:
// "Choice/Betweenness counts ... the number of shortest paths through v
// ... summed over all (s,t)").
package integration

import (
	"context"
	"errors"

	"github.com/placesyntax/pstgo/analysis/betweenness"
	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// ErrNilGraph indicates a nil graph was passed in.
var ErrNilGraph = errors.New("integration: graph is nil")

// Result is one origin's {N, TD} accumulator (spec.md §4.D): N counts
// reachable nodes including the origin itself, TD sums the path depth
// under the analysis's ranking metric. Normalizations (Hillier, Syntax
// NACH/NAIN) are a post-pass over the N/TD arrays, left to the
// normalize package rather than computed here.
type Result struct {
	N  int
	TD float64
}

// Options configures an integration run.
type Options struct {
	Mask    radius.Mask
	Workers int
}

// axialAdapter exposes a core.AxialGraph's line-adjacency-through-
// junctions as a traverse.Graph over LineIDs, ranked by Steps.
type axialAdapter struct{ g *core.AxialGraph }

func (a axialAdapter) NodeCount() int { return a.g.LineCount() }

func (a axialAdapter) Edges(n traverse.NodeID) []traverse.Edge {
	line, err := a.g.Line(core.LineID(n))
	if err != nil {
		return nil
	}
	var out []traverse.Edge
	for _, jid := range line.Junctions {
		j, err := a.g.Junction(jid)
		if err != nil {
			continue
		}
		for _, other := range j.Lines {
			if other == core.LineID(n) {
				continue
			}
			otherLine, err := a.g.Line(other)
			if err != nil {
				continue
			}
			cost := radius.Depth{}.
				Set(radius.TagStraight, otherLine.Length).
				Set(radius.TagWalking, otherLine.Length).
				Set(radius.TagSteps, 1)
			out = append(out, traverse.Edge{To: traverse.NodeID(other), Cost: cost})
		}
	}
	return out
}

// segmentAdapter exposes a core.SegmentGraph's turn-angle edges as a
// traverse.Graph over SegmentIDs, carrying both Angular (turn-angle) and
// Walking (incident line length) cost, so the same adapter drives
// Angular Integration, Angular Choice, and length-weighted
// normalization.
type segmentAdapter struct{ g *core.SegmentGraph }

func (a segmentAdapter) NodeCount() int { return a.g.SegmentCount() }

func (a segmentAdapter) Edges(n traverse.NodeID) []traverse.Edge {
	edges, err := a.g.Edges(core.SegmentID(n))
	if err != nil {
		return nil
	}
	out := make([]traverse.Edge, 0, len(edges))
	for _, e := range edges {
		length := 0.0
		if line, err := a.g.Axial.Line(core.LineID(e.Other)); err == nil {
			length = line.Length
		}
		cost := radius.Depth{}.
			Set(radius.TagAngular, e.AngleDegrees).
			Set(radius.TagWalking, length).
			Set(radius.TagSteps, 1)
		out = append(out, traverse.Edge{To: traverse.NodeID(e.Other), Cost: cost})
	}
	return out
}

// NetworkIntegration runs spec.md §4.D's Network Integration: Dijkstra on
// the axial graph ranked by Steps, accumulating per-origin {N, TD}.
//
// Complexity: O(originCount * (L+edges) log L), optionally parallelized
// across Options.Workers (spec.md §5).
func NetworkIntegration(ctx context.Context, g *core.AxialGraph, origins []core.LineID, opts Options) ([]Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	nodes := make([]traverse.NodeID, len(origins))
	for i, o := range origins {
		nodes[i] = traverse.NodeID(o)
	}
	return runIntegration(ctx, axialAdapter{g: g}, nodes, radius.TagSteps, opts)
}

// AngularIntegration runs spec.md §4.D's Angular Integration: Dijkstra on
// the segment graph ranked by Angular depth.
func AngularIntegration(ctx context.Context, g *core.SegmentGraph, origins []core.SegmentID, opts Options) ([]Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	nodes := make([]traverse.NodeID, len(origins))
	for i, o := range origins {
		nodes[i] = traverse.NodeID(o)
	}
	return runIntegration(ctx, segmentAdapter{g: g}, nodes, radius.TagAngular, opts)
}

// OverGraph runs the same Dijkstra-and-accumulate {N, TD} procedure as
// NetworkIntegration/AngularIntegration over any traverse.Graph adapter,
// letting other packages (e.g. analysis/grouping's Segment Group
// Integration, which replays this over a group-quotient graph) reuse the
// accumulation logic without duplicating it.
func OverGraph(ctx context.Context, g traverse.Graph, nodes []traverse.NodeID, rankTag radius.Tag, opts Options) ([]Result, error) {
	return runIntegration(ctx, g, nodes, rankTag, opts)
}

func runIntegration(ctx context.Context, adapter traverse.Graph, nodes []traverse.NodeID, rankTag radius.Tag, opts Options) ([]Result, error) {
	out := make([]Result, len(nodes))
	idx := make(map[traverse.NodeID]int, len(nodes))
	for i, n := range nodes {
		idx[n] = i
	}
	err := traverse.RunPerOrigin(ctx, nodes, opts.Workers, func(ctx context.Context, n traverse.NodeID) error {
		topts := traverse.DefaultOptions(n)
		topts.Mask = opts.Mask
		topts.RankTag = rankTag
		res, err := traverse.Run(ctx, adapter, topts)
		if err != nil {
			return err
		}
		var td float64
		for _, d := range res.Depth {
			td += d.Get(rankTag)
		}
		out[idx[n]] = Result{N: len(res.Depth), TD: td}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AngularChoice computes the exact Angular Choice metric (spec.md §4.D)
// by running Brandes' betweenness on the segment graph ranked by Angular
// depth, treating every segment as a potential source and through-node.
func AngularChoice(ctx context.Context, g *core.SegmentGraph, mask radius.Mask) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	sources := allSegments(g)
	return betweenness.Brandes(ctx, segmentAdapter{g: g}, mask, radius.TagAngular, sources, nil)
}

// FastAngularChoice computes the Fast Angular Choice variant (spec.md
// §4.D/§9): a precomputed per-source shortest-path tree summed without
// Brandes' backward dependency accumulation, trading exactness for
// speed. It is a distinct analysis from AngularChoice, not a
// substitutable optimization (spec.md §9).
func FastAngularChoice(ctx context.Context, g *core.SegmentGraph, mask radius.Mask) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	sources := allSegments(g)
	return betweenness.FastSegmentBetweenness(ctx, segmentAdapter{g: g}, mask, radius.TagAngular, sources)
}

func allSegments(g *core.SegmentGraph) []traverse.NodeID {
	n := g.SegmentCount()
	out := make([]traverse.NodeID, n)
	for i := range out {
		out[i] = traverse.NodeID(i)
	}
	return out
}
