package graphbuild

import (
	"sort"

	"github.com/placesyntax/pstgo/core"
)

// GroupOption configures BuildGroupGraph.
type GroupOption func(*groupConfig)

type groupConfig struct {
	angleThreshold   float64
	splitAtJunctions bool
}

func defaultGroupConfig() groupConfig {
	return groupConfig{angleThreshold: 15, splitAtJunctions: false}
}

// WithGroupAngleThreshold sets θ₀ (spec.md §4.B): a segment edge whose turn
// angle is >= threshold never joins its two segments into the same group.
func WithGroupAngleThreshold(degrees float64) GroupOption {
	return func(c *groupConfig) { c.angleThreshold = degrees }
}

// WithGroupJunctionSplit, when enabled, additionally refuses to group two
// segments across a junction of degree >= 3 (spec.md §4.B: "do not pass
// through a >=3-degree junction"), even if the turn angle is below θ₀.
func WithGroupJunctionSplit(enabled bool) GroupOption {
	return func(c *groupConfig) { c.splitAtJunctions = enabled }
}

// BuildGroupGraph runs the segment-group graph build algorithm (spec.md
// §4.B, third algorithm): (1) two segments fall into the same connected
// component iff reachable via a chain of segment edges whose turn angle is
// below the threshold and, when splitAtJunctions is set, whose shared
// junction has degree < 3; (2) every segment gets the GroupID of its
// component; (3) group-to-group edges are the deduplicated cross-group
// segment edges, each weighted by the minimum turn angle observed between
// any member pair (spec.md §3, "Segment-group graph").
//
// Complexity: O(S + E) for the union-find pass, O(E log E) for edge dedup.
func BuildGroupGraph(seg *core.SegmentGraph, opts ...GroupOption) *core.GroupGraph {
	cfg := defaultGroupConfig()
	for _, o := range opts {
		o(&cfg)
	}

	n := seg.SegmentCount()
	uf := newUnionFind(n)
	for sid := 0; sid < n; sid++ {
		edges, _ := seg.Edges(core.SegmentID(sid))
		for _, e := range edges {
			if !groupable(seg, core.SegmentID(sid), e, cfg) {
				continue
			}
			uf.union(sid, int(e.Other))
		}
	}

	roots := make([]int, 0, n)
	rootSeen := make(map[int]bool, n)
	for sid := 0; sid < n; sid++ {
		r := uf.find(sid)
		if !rootSeen[r] {
			rootSeen[r] = true
			roots = append(roots, r)
		}
	}
	sort.Ints(roots)
	groupOf := make(map[int]core.GroupID, len(roots))
	for gid, r := range roots {
		groupOf[r] = core.GroupID(gid)
	}

	segments := make([]core.GroupID, n)
	members := make([][]core.SegmentID, len(roots))
	for sid := 0; sid < n; sid++ {
		gid := groupOf[uf.find(sid)]
		segments[sid] = gid
		members[gid] = append(members[gid], core.SegmentID(sid))
	}

	type pairKey struct{ a, b core.GroupID }
	minAngle := make(map[pairKey]float64)
	for sid := 0; sid < n; sid++ {
		from := segments[sid]
		edges, _ := seg.Edges(core.SegmentID(sid))
		for _, e := range edges {
			to := segments[e.Other]
			if to == from {
				continue
			}
			k := pairKey{from, to}
			if cur, ok := minAngle[k]; !ok || e.AngleDegrees < cur {
				minAngle[k] = e.AngleDegrees
			}
		}
	}

	groupEdges := make([][]core.GroupEdge, len(roots))
	for k, angle := range minAngle {
		groupEdges[k.a] = append(groupEdges[k.a], core.GroupEdge{Other: k.b, MinAngleDeg: angle})
	}
	for g := range groupEdges {
		sort.Slice(groupEdges[g], func(i, j int) bool { return groupEdges[g][i].Other < groupEdges[g][j].Other })
	}

	return core.NewGroupGraph(seg, segments, members, groupEdges)
}

// groupable reports whether edge e (outgoing from sid) qualifies segments
// sid and e.Other for the same group under cfg.
func groupable(seg *core.SegmentGraph, sid core.SegmentID, e core.SegmentEdge, cfg groupConfig) bool {
	if e.AngleDegrees >= cfg.angleThreshold {
		return false
	}
	if !cfg.splitAtJunctions {
		return true
	}
	j, err := seg.Axial.Junction(e.Junction)
	if err != nil {
		return true
	}
	return j.Degree() < 3
}
