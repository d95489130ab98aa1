// Package reach implements the Reach analysis (spec.md §4.D): for each
// origin, walk the graph within a radius mask and accumulate reached-line
// count, reached-line total length, and the convex-hull area of every
// reached line's endpoints.
package reach

import (
	"context"
	"errors"

	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// ErrNilGraph indicates a nil axial graph was passed to Run.
var ErrNilGraph = errors.New("reach: axial graph is nil")

// Result is one origin's accumulated Reach output (spec.md §3,
// "Accumulator vectors": {count, total_depth, total_weight,
// total_depth_weight, betweenness, score} specialized here to Reach's
// three published fields).
type Result struct {
	Count  int
	Length float64
	Area   float64
}

// Options configures a Reach run.
type Options struct {
	Mask radius.Mask
	// Workers bounds RunPerOrigin's concurrency; <=1 runs sequentially.
	Workers int
}

// axialAdapter exposes a core.AxialGraph's line-adjacency-through-
// junctions as a traverse.Graph over LineIDs, so the generic kernel can
// drive Reach without importing core itself.
type axialAdapter struct {
	g *core.AxialGraph
}

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

// Run computes Reach for every origin line, returning one Result per
// origin in the same order as origins.
//
// Complexity: O(originCount * (L + edges) log L) with the traverse
// kernel's per-origin cost, optionally parallelized across Options.Workers
// (spec.md §5).
func Run(ctx context.Context, g *core.AxialGraph, origins []core.LineID, opts Options) ([]Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	adapter := axialAdapter{g: g}
	results := make([]Result, len(origins))

	err := traverse.RunPerOrigin(ctx, toNodeIDs(origins), opts.Workers, func(ctx context.Context, n traverse.NodeID) error {
		idx := indexOf(origins, core.LineID(n))
		topts := traverse.DefaultOptions(n)
		topts.Mask = opts.Mask
		topts.RankTag = radius.TagStraight
		res, err := traverse.Run(ctx, adapter, topts)
		if err != nil {
			return err
		}
		results[idx] = reduce(g, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func reduce(g *core.AxialGraph, res traverse.Result) Result {
	var out Result
	var pts []geom.Point
	for nid := range res.Depth {
		line, err := g.Line(core.LineID(nid))
		if err != nil {
			continue
		}
		out.Count++
		out.Length += line.Length
		pts = append(pts,
			geom.Point{X: line.A.X, Y: line.A.Y},
			geom.Point{X: line.B.X, Y: line.B.Y},
		)
	}
	out.Area = geom.ConvexHullArea(pts)
	return out
}

func toNodeIDs(lines []core.LineID) []traverse.NodeID {
	out := make([]traverse.NodeID, len(lines))
	for i, l := range lines {
		out[i] = traverse.NodeID(l)
	}
	return out
}

func indexOf(lines []core.LineID, target core.LineID) int {
	for i, l := range lines {
		if l == target {
			return i
		}
	}
	return -1
}
