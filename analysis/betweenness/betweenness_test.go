package betweenness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/traverse"
)

// lineGraph is an undirected chain 0-1-...-(n-1), every edge costing 1
// Steps and 0 Angular, mirroring traverse/kernel_test.go's fixture.
type lineGraph struct{ n int }

func (g lineGraph) NodeCount() int { return g.n }
func (g lineGraph) Edges(n traverse.NodeID) []traverse.Edge {
	var out []traverse.Edge
	cost := radius.Depth{}.Set(radius.TagSteps, 1)
	if int(n) > 0 {
		out = append(out, traverse.Edge{To: n - 1, Cost: cost})
	}
	if int(n) < g.n-1 {
		out = append(out, traverse.Edge{To: n + 1, Cost: cost})
	}
	return out
}

func allNodes(n int) []traverse.NodeID {
	out := make([]traverse.NodeID, n)
	for i := range out {
		out[i] = traverse.NodeID(i)
	}
	return out
}

func TestBrandesChainMiddleScoresHighest(t *testing.T) {
	g := lineGraph{n: 5}
	scores, err := Brandes(context.Background(), g, radius.New(), radius.TagSteps, allNodes(5), nil)
	require.NoError(t, err)
	require.Len(t, scores, 5)
	assert.Greater(t, scores[2], scores[0])
	assert.Greater(t, scores[2], scores[4])
	assert.Equal(t, scores[1], scores[3], "chain is symmetric")
}

func TestBrandesEndpointsHaveZeroBetweenness(t *testing.T) {
	g := lineGraph{n: 5}
	scores, err := Brandes(context.Background(), g, radius.New(), radius.TagSteps, allNodes(5), nil)
	require.NoError(t, err)
	assert.Zero(t, scores[0])
	assert.Zero(t, scores[4])
}

func TestBrandesSourceWeightScalesContribution(t *testing.T) {
	g := lineGraph{n: 3}
	unweighted, err := Brandes(context.Background(), g, radius.New(), radius.TagSteps, allNodes(3), nil)
	require.NoError(t, err)
	weighted, err := Brandes(context.Background(), g, radius.New(), radius.TagSteps, allNodes(3), []float64{2, 2, 2})
	require.NoError(t, err)
	for i := range unweighted {
		assert.InDelta(t, unweighted[i]*2, weighted[i], 1e-9)
	}
}

func TestFastSegmentBetweennessMiddleScoresHighest(t *testing.T) {
	g := lineGraph{n: 5}
	scores, err := FastSegmentBetweenness(context.Background(), g, radius.New(), radius.TagSteps, allNodes(5))
	require.NoError(t, err)
	assert.Greater(t, scores[2], scores[0])
}

func TestODBetweennessClosestOnlyCreditsNearestDestination(t *testing.T) {
	g := lineGraph{n: 5}
	origins := []WeightedNode{{Node: 0, Weight: 1}}
	destinations := []WeightedNode{{Node: 2, Weight: 1}, {Node: 4, Weight: 1}}
	scores, err := ODBetweenness(context.Background(), g, radius.New(), radius.TagSteps, origins, destinations, DestClosest)
	require.NoError(t, err)
	// path 0->1->2: nodes 1 and 2 credited, node 4's path (3,4) untouched.
	assert.Equal(t, 1.0, scores[1])
	assert.Equal(t, 1.0, scores[2])
	assert.Zero(t, scores[3])
	assert.Zero(t, scores[4])
}

func TestODBetweennessAllModeCreditsEveryReachedDestination(t *testing.T) {
	g := lineGraph{n: 5}
	origins := []WeightedNode{{Node: 0, Weight: 1}}
	destinations := []WeightedNode{{Node: 2, Weight: 1}, {Node: 4, Weight: 1}}
	scores, err := ODBetweenness(context.Background(), g, radius.New(), radius.TagSteps, origins, destinations, DestAll)
	require.NoError(t, err)
	assert.Equal(t, 2.0, scores[1], "node 1 lies on both 0->2 and 0->4 paths")
	assert.Equal(t, 2.0, scores[2], "node 2 is the 0->2 destination and lies on the 0->4 path")
	assert.Equal(t, 1.0, scores[3])
	assert.Equal(t, 1.0, scores[4])
}

func TestBrandesNilGraph(t *testing.T) {
	_, err := Brandes(context.Background(), nil, radius.New(), radius.TagSteps, nil, nil)
	assert.ErrorIs(t, err, ErrNilGraph)
}
