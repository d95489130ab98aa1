package attraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/analysis/betweenness"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// lineGraph is an undirected chain 0-1-...-(n-1), every edge costing 1
// Steps/Walking.
type lineGraph struct{ n int }

func (g lineGraph) NodeCount() int { return g.n }
func (g lineGraph) Edges(n traverse.NodeID) []traverse.Edge {
	var out []traverse.Edge
	cost := radius.Depth{}.Set(radius.TagSteps, 1).Set(radius.TagWalking, 1)
	if int(n) > 0 {
		out = append(out, traverse.Edge{To: n - 1, Cost: cost})
	}
	if int(n) < g.n-1 {
		out = append(out, traverse.Edge{To: n + 1, Cost: cost})
	}
	return out
}

func TestWeightConstantAlwaysOne(t *testing.T) {
	assert.Equal(t, 1.0, Weight(Constant, 0.3, 2))
	assert.Equal(t, 1.0, Weight(Constant, 1.0, 2))
}

func TestWeightPowDecaysToZeroAtEdge(t *testing.T) {
	assert.InDelta(t, 1, Weight(Pow, 0, 2), 1e-9)
	assert.InDelta(t, 0, Weight(Pow, 1, 2), 1e-9)
}

func TestWeightCurveSymmetric(t *testing.T) {
	assert.InDelta(t, 1-Weight(Curve, 0.25, 0), Weight(Curve, 0.75, 0), 1e-9)
	assert.Greater(t, Weight(Curve, 0.1, 0), Weight(Curve, 0.9, 0))
}

func TestDistanceReturnsSentinelWhenUnreachable(t *testing.T) {
	g := lineGraph{n: 3}
	out, err := Distance(context.Background(), g, radius.New().With(radius.TagSteps, 0), radius.TagSteps,
		[]traverse.NodeID{0}, []Point{{Node: 2, Value: 1, Group: -1}})
	require.NoError(t, err)
	assert.Equal(t, float64(Unreachable), out[0])
}

func TestDistanceFindsNearestAttraction(t *testing.T) {
	g := lineGraph{n: 5}
	out, err := Distance(context.Background(), g, radius.New(), radius.TagSteps,
		[]traverse.NodeID{0}, []Point{{Node: 2, Value: 1, Group: -1}, {Node: 4, Value: 1, Group: -1}})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out[0])
}

func TestReachDivideDistributionSplitsGroupValue(t *testing.T) {
	g := lineGraph{n: 3}
	points := []Point{
		{Node: 1, Value: 10, Group: 0},
		{Node: 2, Value: 10, Group: 0},
	}
	opts := ReachOptions{Mask: radius.New(), RankTag: radius.TagSteps, WeightFn: Constant, Collection: Sum, Distribution: DivideDistribution}
	out, err := Reach(context.Background(), g, []traverse.NodeID{0}, points, opts)
	require.NoError(t, err)
	// each point carries 10/2=5, Sum collection over the single group -> 10.
	assert.InDelta(t, 10, out[0], 1e-9)
}

func TestReachCopyDistributionKeepsFullValue(t *testing.T) {
	g := lineGraph{n: 3}
	points := []Point{
		{Node: 1, Value: 10, Group: 0},
		{Node: 2, Value: 10, Group: 0},
	}
	opts := ReachOptions{Mask: radius.New(), RankTag: radius.TagSteps, WeightFn: Constant, Collection: Sum, Distribution: CopyDistribution}
	out, err := Reach(context.Background(), g, []traverse.NodeID{0}, points, opts)
	require.NoError(t, err)
	assert.InDelta(t, 20, out[0], 1e-9)
}

func TestReachMaxCollection(t *testing.T) {
	g := lineGraph{n: 3}
	points := []Point{
		{Node: 1, Value: 4, Group: 0},
		{Node: 2, Value: 9, Group: 0},
	}
	opts := ReachOptions{Mask: radius.New(), RankTag: radius.TagSteps, WeightFn: Constant, Collection: Max}
	out, err := Reach(context.Background(), g, []traverse.NodeID{0}, points, opts)
	require.NoError(t, err)
	assert.InDelta(t, 9, out[0], 1e-9)
}

func TestBetweennessUsesDestinationAttractionWeight(t *testing.T) {
	g := lineGraph{n: 3}
	out, err := Betweenness(context.Background(), g, radius.New(), radius.TagSteps,
		[]traverse.NodeID{0}, []Point{{Node: 2, Value: 5, Group: -1}}, betweenness.DestAll)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[1], "intermediate node 1 carries the destination's attraction weight")
}

func TestDistanceNilGraph(t *testing.T) {
	_, err := Distance(context.Background(), nil, radius.New(), radius.TagSteps, nil, nil)
	assert.ErrorIs(t, err, ErrNilGraph)
}
