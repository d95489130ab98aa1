package traverse

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/radius"
)

// lineGraph is a trivial 0-1-2-3 chain, each edge 1 unit of straight-line
// distance and 1 step, used to exercise Run without any analysis-specific
// adapter.
type lineGraph struct{ n int }

func (g lineGraph) NodeCount() int { return g.n }
func (g lineGraph) Edges(n NodeID) []Edge {
	var out []Edge
	cost := radius.Depth{}.Set(radius.TagStraight, 1).Set(radius.TagSteps, 1)
	if int(n) > 0 {
		out = append(out, Edge{To: n - 1, Cost: cost})
	}
	if int(n) < g.n-1 {
		out = append(out, Edge{To: n + 1, Cost: cost})
	}
	return out
}

func TestRunReachesEveryNodeUnbounded(t *testing.T) {
	g := lineGraph{n: 5}
	res, err := Run(context.Background(), g, DefaultOptions(0))
	require.NoError(t, err)
	assert.Len(t, res.Depth, 5)
	assert.Equal(t, 4.0, res.Depth[4].Get(radius.TagStraight))
}

func TestRunRespectsRadiusMask(t *testing.T) {
	g := lineGraph{n: 5}
	opts := DefaultOptions(0)
	opts.Mask = radius.New().With(radius.TagStraight, 2)
	res, err := Run(context.Background(), g, opts)
	require.NoError(t, err)
	assert.Len(t, res.Depth, 3) // nodes 0,1,2
	_, reached3 := res.Depth[3]
	assert.False(t, reached3)
}

func TestRunPredecessorChain(t *testing.T) {
	g := lineGraph{n: 3}
	res, err := Run(context.Background(), g, DefaultOptions(0))
	require.NoError(t, err)
	assert.Equal(t, NodeID(1), res.Pred[2])
	assert.Equal(t, NodeID(0), res.Pred[1])
}

func TestRunCancelledByContext(t *testing.T) {
	g := lineGraph{n: 3}
	opts := DefaultOptions(0)
	opts.PollInterval = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, g, opts)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRunCancelledByProgressCallback(t *testing.T) {
	g := lineGraph{n: 50}
	opts := DefaultOptions(0)
	opts.PollInterval = 1
	opts.Progress = func() bool { return true }
	_, err := Run(context.Background(), g, opts)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRunBadSource(t *testing.T) {
	g := lineGraph{n: 3}
	_, err := Run(context.Background(), g, DefaultOptions(99))
	assert.ErrorIs(t, err, ErrBadSource)
}

func TestRunNilGraph(t *testing.T) {
	_, err := Run(context.Background(), nil, DefaultOptions(0))
	assert.ErrorIs(t, err, ErrNilGraph)
}

type countingVisitor struct {
	NopVisitor
	finalized int32
}

func (v *countingVisitor) OnFinalize(NodeID, radius.Depth) {
	atomic.AddInt32(&v.finalized, 1)
}

func TestRunVisitorOnFinalizeCalledOncePerNode(t *testing.T) {
	g := lineGraph{n: 6}
	opts := DefaultOptions(0)
	vis := &countingVisitor{}
	opts.Visitor = vis
	_, err := Run(context.Background(), g, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 6, vis.finalized)
}

func TestRunPerOriginSequentialAndParallelAgree(t *testing.T) {
	g := lineGraph{n: 6}
	origins := []NodeID{0, 1, 2, 3, 4, 5}
	results := make([]radius.Depth, len(origins))

	err := RunPerOrigin(context.Background(), origins, 0, func(ctx context.Context, o NodeID) error {
		res, err := Run(ctx, g, DefaultOptions(o))
		if err != nil {
			return err
		}
		results[o] = res.Depth[NodeID(len(origins)-1)]
		return nil
	})
	require.NoError(t, err)

	parallelResults := make([]radius.Depth, len(origins))
	err = RunPerOrigin(context.Background(), origins, 4, func(ctx context.Context, o NodeID) error {
		res, err := Run(ctx, g, DefaultOptions(o))
		if err != nil {
			return err
		}
		parallelResults[o] = res.Depth[NodeID(len(origins)-1)]
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, results, parallelResults)
}
