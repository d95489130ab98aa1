// Package attraction implements Attraction Distance, Attraction Reach,
// and Attraction Betweenness (spec.md §4.D): analyses that measure an
// origin's accessibility to a set of weighted attraction points or
// polygon-sampled attraction groups, rather than to every other line in
// the network.
package attraction

import (
	"context"
	"errors"
	"math"

	"github.com/placesyntax/pstgo/analysis/betweenness"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// ErrNilGraph indicates a nil graph was passed in.
var ErrNilGraph = errors.New("attraction: graph is nil")

// Unreachable is the sentinel Attraction Distance reports when no
// attraction point is reachable within the radius mask (spec.md §4.D:
// "If none is reachable, output sentinel -1").
const Unreachable = -1

// WeightFunc selects the distance-decay curve applied to a normalized
// depth x in [0,1] (spec.md §4.D).
type WeightFunc int

const (
	// Constant always returns 1 (no decay).
	Constant WeightFunc = iota
	// Pow returns 1 - x^C.
	Pow
	// Curve is a piecewise-symmetric ease curve: 1-2x^2 for x<=0.5,
	// 2(1-x)^2 beyond, matching a quadratic-falloff "curve" shape
	// symmetric about the radius midpoint.
	Curve
	// Divide returns (x+1)^-C.
	Divide
)

// Weight evaluates fn at normalized depth x with shape parameter c.
func Weight(fn WeightFunc, x, c float64) float64 {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	switch fn {
	case Pow:
		return 1 - math.Pow(x, c)
	case Curve:
		if x <= 0.5 {
			return 1 - 2*x*x
		}
		return 2 * (1 - x) * (1 - x)
	case Divide:
		return math.Pow(x+1, -c)
	default:
		return 1
	}
}

// DistributionFunc selects how a polygon attraction's single value is
// spread across its sampled points (spec.md §4.D).
type DistributionFunc int

const (
	// CopyDistribution gives every sampled point the polygon's full value.
	CopyDistribution DistributionFunc = iota
	// DivideDistribution splits the polygon's value evenly across its
	// sampled points.
	DivideDistribution
)

// CollectionFunc selects how per-point contributions within one
// attraction group collapse to a single value (spec.md §4.D).
type CollectionFunc int

const (
	Average CollectionFunc = iota
	Sum
	Min
	Max
)

func collect(fn CollectionFunc, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch fn {
	case Sum:
		var s float64
		for _, v := range values {
			s += v
		}
		return s
	case Min:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case Max:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default: // Average
		var s float64
		for _, v := range values {
			s += v
		}
		return s / float64(len(values))
	}
}

// Point is one attraction point or polygon-sampled point: Value is its
// raw attraction weight, Group is its polygon group id, or -1 for an
// ungrouped raw attraction point (spec.md §3, "Point groups").
type Point struct {
	Node  traverse.NodeID
	Value float64
	Group int
}

// applyDistribution rewrites each grouped point's Value in place
// (DivideDistribution splits the group's total evenly across its
// members; CopyDistribution leaves every point's full value as given).
func applyDistribution(points []Point, dist DistributionFunc) []Point {
	if dist != DivideDistribution {
		return points
	}
	counts := map[int]int{}
	for _, p := range points {
		if p.Group >= 0 {
			counts[p.Group]++
		}
	}
	out := make([]Point, len(points))
	copy(out, points)
	for i, p := range out {
		if p.Group >= 0 && counts[p.Group] > 0 {
			out[i].Value = p.Value / float64(counts[p.Group])
		}
	}
	return out
}

// Distance runs spec.md §4.D's Attraction Distance: for each origin, the
// smallest radius-bounded depth (under rankTag) to any attraction point,
// or Unreachable if none is within the mask.
func Distance(ctx context.Context, g traverse.Graph, mask radius.Mask, rankTag radius.Tag, origins []traverse.NodeID, attractions []Point) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	out := make([]float64, len(origins))
	for i, o := range origins {
		opts := traverse.DefaultOptions(o)
		opts.Mask = mask
		opts.RankTag = rankTag
		res, err := traverse.Run(ctx, g, opts)
		if err != nil {
			return nil, err
		}
		best := math.Inf(1)
		for _, a := range attractions {
			if d, ok := res.Depth[a.Node]; ok {
				if v := d.Get(rankTag); v < best {
					best = v
				}
			}
		}
		if math.IsInf(best, 1) {
			out[i] = Unreachable
		} else {
			out[i] = best
		}
	}
	return out, nil
}

// ReachOptions configures Reach.
type ReachOptions struct {
	Mask         radius.Mask
	RankTag      radius.Tag
	WeightFn     WeightFunc
	WeightParam  float64
	Distribution DistributionFunc
	Collection   CollectionFunc
	// NormalizeBy converts a raw depth into x in [0,1] for Weight; it is
	// typically the active radius limit on rankTag. NormalizeBy<=0
	// disables decay (every reached point weights as Weight at x=0).
	NormalizeBy float64
}

// Reach runs spec.md §4.D's Attraction Reach: for each origin, aggregate
// attraction values within the radius mask, decayed by distance through
// the configured weight function. Grouped points (polygon-sampled
// attractions) first collapse to one value per group via Collection,
// then every group's (and every ungrouped point's) contribution sums
// into the origin's total.
func Reach(ctx context.Context, g traverse.Graph, origins []traverse.NodeID, attractions []Point, opts ReachOptions) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	distributed := applyDistribution(attractions, opts.Distribution)
	out := make([]float64, len(origins))

	for i, o := range origins {
		topts := traverse.DefaultOptions(o)
		topts.Mask = opts.Mask
		topts.RankTag = opts.RankTag
		res, err := traverse.Run(ctx, g, topts)
		if err != nil {
			return nil, err
		}

		groupValues := map[int][]float64{}
		var ungrouped []float64
		for _, a := range distributed {
			d, ok := res.Depth[a.Node]
			if !ok {
				continue
			}
			x := 0.0
			if opts.NormalizeBy > 0 {
				x = d.Get(opts.RankTag) / opts.NormalizeBy
			}
			contribution := a.Value * Weight(opts.WeightFn, x, opts.WeightParam)
			if a.Group >= 0 {
				groupValues[a.Group] = append(groupValues[a.Group], contribution)
			} else {
				ungrouped = append(ungrouped, contribution)
			}
		}

		var total float64
		for _, vs := range groupValues {
			total += collect(opts.Collection, vs)
		}
		for _, v := range ungrouped {
			total += v
		}
		out[i] = total
	}
	return out, nil
}

// Betweenness runs spec.md §4.D's Attraction Betweenness: a betweenness
// pass where the (origin, destination) mass is the destination's
// attraction weight rather than a uniform 1, path accumulation
// otherwise following OD-Betweenness (which itself documents the same
// single-predecessor-tree #paths=1 simplification relative to Brandes).
func Betweenness(ctx context.Context, g traverse.Graph, mask radius.Mask, rankTag radius.Tag, origins []traverse.NodeID, attractions []Point, mode betweenness.DestinationMode) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	originNodes := make([]betweenness.WeightedNode, len(origins))
	for i, o := range origins {
		originNodes[i] = betweenness.WeightedNode{Node: o, Weight: 1}
	}
	destNodes := make([]betweenness.WeightedNode, len(attractions))
	for i, a := range attractions {
		destNodes[i] = betweenness.WeightedNode{Node: a.Node, Weight: a.Value}
	}
	return betweenness.ODBetweenness(ctx, g, mask, rankTag, originNodes, destNodes, mode)
}
