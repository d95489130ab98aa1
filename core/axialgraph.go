// File: axialgraph.go
// Role: AxialGraph — the line/junction/point arena built by graphbuild from
// raw coordinates (spec.md §3, "Axial graph"). Read-only after construction:
// every field here is populated once by graphbuild.BuildAxialGraph and never mutated
// again, so concurrent analyses may share one *AxialGraph safely
// (spec.md §5, "Shared resources").
package core

import "errors"

// Sentinel errors returned by axial-graph accessors.
var (
	// ErrLineNotFound indicates a LineID outside [0, LineCount).
	ErrLineNotFound = errors.New("core: line not found")

	// ErrJunctionNotFound indicates a JunctionID outside [0, JunctionCount).
	ErrJunctionNotFound = errors.New("core: junction not found")

	// ErrPointNotFound indicates a PointID outside [0, PointCount).
	ErrPointNotFound = errors.New("core: point not found")
)

// Line is one input line: its two endpoint coordinates (copied in at build
// time, never aliasing caller memory afterward), precomputed length, and
// the junctions that touch it at either end.
type Line struct {
	A, B   Coordinate
	Length float64
	// Junctions holds every JunctionID incident to this line, in no
	// particular order (a line touches at most one junction per endpoint;
	// an endpoint shared with no other line has none, and an unlink split
	// leaves each affected line its own single-line junction).
	Junctions []JunctionID
}

// Coordinate is a planar point, kept distinct from geom.Point so core has
// no import-time dependency on geom; graphbuild converts between the two.
type Coordinate struct {
	X, Y float64
}

// Junction is a position shared by two or more lines, or a singleton left
// behind by an unlink split (spec.md §3: "the junction is split... both
// lines continue, but no edge is added between them at that location").
type Junction struct {
	Position Coordinate
	// Lines holds the LineIDs incident to this junction in build order.
	Lines []LineID
}

// Degree returns the number of lines incident to the junction.
func (j Junction) Degree() int { return len(j.Lines) }

// Point is an exogenous origin/destination attached to its nearest line by
// perpendicular projection (spec.md §3, §4.B).
type Point struct {
	Position Coordinate
	// Line is the line this point is attached to.
	Line LineID
	// FootParam is the projection parameter along Line, in [0,1].
	FootParam float64
	// Distance is the Euclidean distance from Position to the projected
	// foot on Line.
	Distance float64
	// Group is the PointGroupID this point was sampled from, or NoID if
	// the point was supplied directly (not polygon-sampled).
	Group PointGroupID
}

// PointGroup records the polygon entity that contributed a run of
// polygon-sampled points (spec.md §3, "Point groups").
type PointGroup struct {
	// Points holds the PointIDs sampled from this polygon, in emission order.
	Points []PointID
}

// AxialGraph is the arena of lines, junctions, points and point groups
// produced by graphbuild.BuildAxialGraph. All fields are indexed by the
// corresponding typed ID and are contiguous (spec.md §3 invariant: "line
// indices are contiguous").
type AxialGraph struct {
	lines       []Line
	junctions   []Junction
	points      []Point
	pointGroups []PointGroup
}

// NewAxialGraph assembles an AxialGraph from already-built entity slices.
// It is the single constructor used by graphbuild.BuildAxialGraph; callers never
// mutate the slices afterward.
func NewAxialGraph(lines []Line, junctions []Junction, points []Point, groups []PointGroup) *AxialGraph {
	return &AxialGraph{lines: lines, junctions: junctions, points: points, pointGroups: groups}
}

// LineCount returns the number of lines, L.
func (g *AxialGraph) LineCount() int { return len(g.lines) }

// JunctionCount returns the number of junctions, J.
func (g *AxialGraph) JunctionCount() int { return len(g.junctions) }

// PointCount returns the number of points, P.
func (g *AxialGraph) PointCount() int { return len(g.points) }

// PointGroupCount returns the number of point groups.
func (g *AxialGraph) PointGroupCount() int { return len(g.pointGroups) }

// Line returns the line with the given id. Complexity: O(1).
func (g *AxialGraph) Line(id LineID) (Line, error) {
	if int(id) < 0 || int(id) >= len(g.lines) {
		return Line{}, ErrLineNotFound
	}
	return g.lines[id], nil
}

// Junction returns the junction with the given id. Complexity: O(1).
func (g *AxialGraph) Junction(id JunctionID) (Junction, error) {
	if int(id) < 0 || int(id) >= len(g.junctions) {
		return Junction{}, ErrJunctionNotFound
	}
	return g.junctions[id], nil
}

// Point returns the point with the given id. Complexity: O(1).
func (g *AxialGraph) Point(id PointID) (Point, error) {
	if int(id) < 0 || int(id) >= len(g.points) {
		return Point{}, ErrPointNotFound
	}
	return g.points[id], nil
}

// PointGroup returns the point group with the given id. Complexity: O(1).
func (g *AxialGraph) PointGroup(id PointGroupID) (PointGroup, error) {
	if int(id) < 0 || int(id) >= len(g.pointGroups) {
		return PointGroup{}, errors.New("core: point group not found")
	}
	return g.pointGroups[id], nil
}

// Junctions3Way returns the JunctionIDs of every junction with degree >= 3,
// used by the CreateJunctions external call (spec.md §6, "enumerate
// >=3-way crossings"). Complexity: O(J).
func (g *AxialGraph) Junctions3Way() []JunctionID {
	var out []JunctionID
	for i, j := range g.junctions {
		if j.Degree() >= 3 {
			out = append(out, JunctionID(i))
		}
	}
	return out
}
