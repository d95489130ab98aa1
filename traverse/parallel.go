package traverse

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// OriginFunc computes one origin's contribution to the caller's
// accumulators. Implementations must only write to the accumulator slot
// identified by origin (spec.md §5: "each worker a private accumulator
// vector and reducing at the end" — callers achieve this by giving
// OriginFunc a closure over a pre-sized, origin-indexed accumulator
// array, never a shared running total).
type OriginFunc func(ctx context.Context, origin NodeID) error

// RunPerOrigin runs fn once for every origin in origins, using at most
// workers goroutines concurrently (workers <= 0 runs sequentially on the
// caller's goroutine, preserving spec.md §5's "within a single-thread
// run, total order of origin processing matches input order").
//
// RunPerOrigin is the parallel counterpart of per-origin Run calls: each
// origin's Dijkstra/BFS traversal is independent (spec.md §5, "origins
// are independent; workers do not share mutable state"), so an
// errgroup.Group with a bounded number of goroutines is sufficient —
// no work-stealing or per-worker queues are needed.
//
// Returns the first error encountered (including ErrCancelled propagated
// from an individual Run), after which all other in-flight origins are
// cancelled via the shared context derived from ctx.
func RunPerOrigin(ctx context.Context, origins []NodeID, workers int, fn OriginFunc) error {
	if workers <= 1 {
		for _, o := range origins {
			if ctx != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx, o); err != nil {
				return err
			}
		}
		return nil
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for _, o := range origins {
		origin := o
		grp.Go(func() error {
			return fn(gctx, origin)
		})
	}
	return grp.Wait()
}
