// File: domain_ids.go
// Role: Typed 32-bit handles for every entity kind in the spatial network
// model (lines, junctions, points, point groups, segments, segment groups).
//
// Every graph in this package (AxialGraph, SegmentGraph, GroupGraph) is an
// arena of flat slices addressed by these handles rather than a pointer
// graph: handles are stable across the graph's lifetime and safe to store
// in caller-allocated accumulator arrays (spec.md §3, "Accumulator
// vectors"). NoID marks an absent reference (e.g. a point's group when it
// was not polygon-sampled).
package core

// LineID identifies one input line, 0..L-1, contiguous per spec.md §3.
type LineID int32

// JunctionID identifies one junction produced by axial graph build.
type JunctionID int32

// PointID identifies one exogenous origin/destination point.
type PointID int32

// PointGroupID identifies one polygon entity that contributed sampled points.
type PointGroupID int32

// SegmentID identifies one segment-graph vertex. Segment graphs have
// exactly one segment per input line, so SegmentID and LineID share the
// same numeric space by construction, but are kept as distinct types to
// catch accidental cross-use at compile time.
type SegmentID int32

// GroupID identifies one segment-group graph node.
type GroupID int32

// NoID is the sentinel value for "no such reference" across every ID type
// in this file (e.g. a point not attached to any polygon group).
const NoID int32 = -1

// Valid reports whether id refers to an actual line (id >= 0).
func (id LineID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an actual junction.
func (id JunctionID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an actual point.
func (id PointID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an actual point group.
func (id PointGroupID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an actual segment.
func (id SegmentID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an actual group.
func (id GroupID) Valid() bool { return id >= 0 }
