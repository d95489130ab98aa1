package betweenness

import (
	"context"
	"sort"

	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// WeightedNode pairs a graph node with a caller-supplied weight: an
// origin's traversal mass or a destination's attraction value (spec.md
// §4.D, "OD-Betweenness").
type WeightedNode struct {
	Node   traverse.NodeID
	Weight float64
}

// DestinationMode selects how many of the reachable destinations each
// origin contributes to (spec.md §4.D: "to all reachable (or only the
// closest) destinations").
type DestinationMode int

const (
	// DestAll credits every reachable destination.
	DestAll DestinationMode = iota
	// DestClosest credits only the nearest reachable destination under
	// rankTag.
	DestClosest
)

// ODBetweenness runs spec.md §4.D's OD-Betweenness: for each weighted
// origin, traverse to reachable destinations and, for each one reached
// (or only the closest, per mode), contribute
// origin_weight * destination_weight / #paths to every line on the path.
// Since the underlying traverse kernel builds a single-predecessor
// shortest-path tree per origin (not a DAG), #paths is always 1 in this
// implementation — a documented simplification relative to Brandes'
// DAG-aware path counting (see DESIGN.md).
//
// rankTag selects the distance mode (spec.md: "Distance mode in
// {Walking, Angular}").
func ODBetweenness(ctx context.Context, g traverse.Graph, mask radius.Mask, rankTag radius.Tag, origins, destinations []WeightedNode, mode DestinationMode) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NodeCount()
	score := make([]float64, n)

	destWeight := make(map[traverse.NodeID]float64, len(destinations))
	for _, d := range destinations {
		destWeight[d.Node] = d.Weight
	}

	for _, o := range origins {
		opts := traverse.DefaultOptions(o.Node)
		opts.Mask = mask
		opts.RankTag = rankTag
		res, err := traverse.Run(ctx, g, opts)
		if err != nil {
			return nil, err
		}

		targets := reachedDestinations(res, destWeight, mode, rankTag)
		for _, t := range targets {
			contribution := o.Weight * destWeight[t]
			cur := t
			for {
				if cur != o.Node {
					score[cur] += contribution
				}
				p, ok := res.Pred[cur]
				if !ok || cur == o.Node {
					break
				}
				cur = p
			}
		}
	}
	return score, nil
}

// reachedDestinations returns the destinations (from destWeight's key
// set) that res actually reached, filtered to the single closest one
// when mode is DestClosest. Iteration is made deterministic by sorting
// candidate node ids before any closest-node comparison.
func reachedDestinations(res traverse.Result, destWeight map[traverse.NodeID]float64, mode DestinationMode, rankTag radius.Tag) []traverse.NodeID {
	var reached []traverse.NodeID
	for d := range destWeight {
		if _, ok := res.Depth[d]; ok {
			reached = append(reached, d)
		}
	}
	sort.Slice(reached, func(i, j int) bool { return reached[i] < reached[j] })
	if mode != DestClosest || len(reached) <= 1 {
		return reached
	}
	best := reached[0]
	bestDepth := res.Depth[best].Get(rankTag)
	for _, d := range reached[1:] {
		if dd := res.Depth[d].Get(rankTag); dd < bestDepth {
			best, bestDepth = d, dd
		}
	}
	return []traverse.NodeID{best}
}
