// Package traverse implements the generalized radius-bounded Dijkstra/BFS
// kernel shared by every analysis in this module (spec.md §4.C).
//
// A single traversal explores a caller-supplied graph view (Graph) from
// one source node, accumulating a radius.Depth vector per edge traversal
// and stopping a branch as soon as any active radius.Mask tag is
// exceeded. The kernel is graph-representation-agnostic: Graph is
// satisfied by adapters over core.SegmentGraph (segment-to-segment,
// weighted by turn angle for Angular, by length for Straight/Walking) and
// over core.AxialGraph via junction adjacency (Steps), so one kernel
// implementation serves Reach, Integration, Betweenness, and the
// Attraction analyses alike (spec.md §9, "one traversal kernel, many
// analyses").
//
// Complexity:
//
//   - Time:  O((N + M) log N) per origin, heap-driven like dijkstra.Dijkstra.
//   - Space: O(N + M) for the visited/depth/heap bookkeeping.
package traverse

import (
	"errors"

	"github.com/placesyntax/pstgo/radius"
)

// Sentinel errors returned by Run.
var (
	// ErrNilGraph indicates a nil Graph was passed to Run.
	ErrNilGraph = errors.New("traverse: graph is nil")

	// ErrBadSource indicates the source node id was out of range.
	ErrBadSource = errors.New("traverse: source node out of range")

	// ErrCancelled indicates the caller's progress callback requested
	// cancellation (returned nonzero) before the traversal completed.
	ErrCancelled = errors.New("traverse: cancelled")
)

// NodeID is an opaque node handle in the caller's graph view, numbered
// 0..N-1 contiguously (a segment id, a junction id, or a point id,
// depending on which analysis built the Graph adapter).
type NodeID int32

// Edge is one outgoing edge from a node, carrying its contribution along
// every radius.Tag dimension (most edges only populate the tags relevant
// to the analysis; unused tags are zero, which composes correctly with
// Depth.Add).
type Edge struct {
	To   NodeID
	Cost radius.Depth
}

// Graph is the minimal read interface the kernel needs. Analyses provide
// a thin adapter over their core graph type; the kernel itself never
// imports core, keeping the traversal algorithm reusable across the
// axial, segment, and segment-group representations.
type Graph interface {
	NodeCount() int
	Edges(n NodeID) []Edge
}

// Visitor receives traversal events as the kernel explores. Every method
// is optional in the sense that a caller may embed NopVisitor and
// override only the hooks it needs.
type Visitor interface {
	// OnDiscover is called the first time a node is reached, with the depth
	// vector of that first relaxation (a later relaxation may still improve
	// it; OnFinalize reports the final one).
	OnDiscover(n NodeID, depth radius.Depth)
	// OnFinalize is called when a node is popped from the frontier with
	// its depth vector locked in (no further relaxation can improve it).
	OnFinalize(n NodeID, depth radius.Depth)
	// OnEdgeRelax is called for every edge examined, whether or not the
	// relaxation improved the target's depth; relaxed reports which.
	OnEdgeRelax(from, to NodeID, depth radius.Depth, relaxed bool)
}

// NopVisitor is a Visitor whose hooks all do nothing; embed it to
// implement only the hooks a particular caller cares about.
type NopVisitor struct{}

func (NopVisitor) OnDiscover(NodeID, radius.Depth)                {}
func (NopVisitor) OnFinalize(NodeID, radius.Depth)                {}
func (NopVisitor) OnEdgeRelax(NodeID, NodeID, radius.Depth, bool) {}

// ProgressFunc is polled at bounded intervals during a traversal
// (spec.md §4.C / §6: "invoked at most every 100ms equivalent"). Here,
// since the kernel has no wall-clock access of its own, it is polled
// every pollInterval heap pops; returning true requests cancellation.
type ProgressFunc func() (cancel bool)

// Options configures one Run call.
type Options struct {
	Source NodeID
	Mask   radius.Mask
	// RankTag is the radius.Tag used to order the priority frontier
	// (Dijkstra ranks by this metric; when it is radius.TagSteps the
	// traversal behaves as a plain BFS since all edge costs on that tag
	// are 1).
	RankTag radius.Tag
	Visitor Visitor
	// Progress, if non-nil, is polled every PollInterval pops.
	Progress     ProgressFunc
	PollInterval int
}

// DefaultPollInterval matches spec.md §4.C's "polled every ~1024 pop
// events" design note.
const DefaultPollInterval = 1024

// DefaultOptions returns Options for a traversal from source with no
// active radius constraints, ranked by TagStraight, and no visitor or
// progress callback (callers typically override Mask/RankTag/Visitor).
func DefaultOptions(source NodeID) Options {
	return Options{
		Source:       source,
		Mask:         radius.New(),
		RankTag:      radius.TagStraight,
		Visitor:      NopVisitor{},
		PollInterval: DefaultPollInterval,
	}
}

// Result is the output of a single-origin traversal.
type Result struct {
	// Depth holds the finalized depth vector of every reached node,
	// keyed by NodeID; unreached nodes are absent.
	Depth map[NodeID]radius.Depth
	// Order lists reached nodes in finalization order, needed by
	// betweenness-style analyses that require a topological replay.
	Order []NodeID
	// Pred holds each reached node's predecessor on the shortest path
	// from Source, used for path reconstruction and dependency
	// accumulation (Brandes' betweenness).
	Pred map[NodeID]NodeID
}
