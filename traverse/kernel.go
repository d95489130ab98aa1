package traverse

import (
	"container/heap"
	"context"

	"github.com/placesyntax/pstgo/radius"
)

// frontierItem is one entry in the priority frontier: a candidate depth
// vector for reaching node, ranked by its RankTag component. Stale
// entries (superseded by a better depth before being popped) are
// detected and skipped lazily, mirroring dijkstra.Dijkstra's
// lazy-decrease-key strategy.
type frontierItem struct {
	node  NodeID
	depth radius.Depth
	rank  float64
	index int
}

type frontier []*frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].rank < f[j].rank }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index, f[j].index = i, j }
func (f *frontier) Push(x interface{}) {
	it := x.(*frontierItem)
	it.index = len(*f)
	*f = append(*f, it)
}
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return it
}

// Run explores g from opts.Source under opts.Mask, calling opts.Visitor
// at each discovery/finalization/edge-relax event and honoring ctx
// cancellation plus opts.Progress, polled every opts.PollInterval pops
// (spec.md §4.C, §5 "Suspension points").
//
// Returns ErrCancelled if ctx is done or Progress requests cancellation
// at a checkpoint; in that case Result is the partial result accumulated
// so far, which callers must discard per spec.md §5 ("partial
// accumulators are discarded").
//
// Complexity: O((N+M) log N).
func Run(ctx context.Context, g Graph, opts Options) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGraph
	}
	n := g.NodeCount()
	if int(opts.Source) < 0 || int(opts.Source) >= n {
		return Result{}, ErrBadSource
	}
	vis := opts.Visitor
	if vis == nil {
		vis = NopVisitor{}
	}
	pollEvery := opts.PollInterval
	if pollEvery <= 0 {
		pollEvery = DefaultPollInterval
	}

	depth := make(map[NodeID]radius.Depth, n)
	pred := make(map[NodeID]NodeID, n)
	finalized := make(map[NodeID]bool, n)
	order := make([]NodeID, 0, n)

	fr := &frontier{}
	heap.Init(fr)
	start := radius.Depth{}
	heap.Push(fr, &frontierItem{node: opts.Source, depth: start, rank: start.Get(opts.RankTag)})
	depth[opts.Source] = start
	vis.OnDiscover(opts.Source, start)

	pops := 0
	for fr.Len() > 0 {
		item := heap.Pop(fr).(*frontierItem)
		u := item.node
		if finalized[u] {
			continue
		}
		if d, ok := depth[u]; ok && d != item.depth {
			// stale entry from a since-improved relaxation
			continue
		}
		finalized[u] = true
		order = append(order, u)
		vis.OnFinalize(u, item.depth)

		pops++
		if pops%pollEvery == 0 {
			if ctx != nil && ctx.Err() != nil {
				return partialResult(depth, order, pred), ErrCancelled
			}
			if opts.Progress != nil && opts.Progress() {
				return partialResult(depth, order, pred), ErrCancelled
			}
		}

		for _, e := range g.Edges(u) {
			next := item.depth.Add(e.Cost)
			if !next.Within(opts.Mask) {
				vis.OnEdgeRelax(u, e.To, next, false)
				continue
			}
			cur, seen := depth[e.To]
			if seen && cur.Get(opts.RankTag) <= next.Get(opts.RankTag) {
				vis.OnEdgeRelax(u, e.To, next, false)
				continue
			}
			depth[e.To] = next
			pred[e.To] = u
			vis.OnEdgeRelax(u, e.To, next, true)
			if !seen {
				vis.OnDiscover(e.To, next)
			}
			heap.Push(fr, &frontierItem{node: e.To, depth: next, rank: next.Get(opts.RankTag)})
		}
	}

	if ctx != nil && ctx.Err() != nil {
		return partialResult(depth, order, pred), ErrCancelled
	}
	return Result{Depth: depth, Order: order, Pred: pred}, nil
}

func partialResult(depth map[NodeID]radius.Depth, order []NodeID, pred map[NodeID]NodeID) Result {
	return Result{Depth: depth, Order: order, Pred: pred}
}
