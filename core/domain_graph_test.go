package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestAxial() *AxialGraph {
	lines := []Line{
		{A: Coordinate{0, 0}, B: Coordinate{10, 0}, Length: 10, Junctions: []JunctionID{0}},
		{A: Coordinate{10, 0}, B: Coordinate{20, 0}, Length: 10, Junctions: []JunctionID{0, 1}},
		{A: Coordinate{20, 0}, B: Coordinate{20, 10}, Length: 10, Junctions: []JunctionID{1}},
	}
	junctions := []Junction{
		{Position: Coordinate{10, 0}, Lines: []LineID{0, 1}},
		{Position: Coordinate{20, 0}, Lines: []LineID{1, 2}},
	}
	points := []Point{
		{Position: Coordinate{5, 1}, Line: 0, FootParam: 0.5, Distance: 1, Group: PointGroupID(NoID)},
	}
	return NewAxialGraph(lines, junctions, points, nil)
}

func TestAxialGraphAccessors(t *testing.T) {
	g := buildTestAxial()
	assert.Equal(t, 3, g.LineCount())
	assert.Equal(t, 2, g.JunctionCount())
	assert.Equal(t, 1, g.PointCount())

	l, err := g.Line(1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, l.Length)

	_, err = g.Line(99)
	assert.ErrorIs(t, err, ErrLineNotFound)

	j, err := g.Junction(1)
	require.NoError(t, err)
	assert.Equal(t, 2, j.Degree())
}

func TestJunctions3Way(t *testing.T) {
	g := buildTestAxial()
	threeWay := g.Junctions3Way()
	assert.Empty(t, threeWay)

	g.junctions = append(g.junctions, Junction{Lines: []LineID{0, 1, 2}})
	threeWay = g.Junctions3Way()
	assert.Equal(t, []JunctionID{2}, threeWay)
}

func TestSegmentGraphEdgesAndDegree(t *testing.T) {
	axial := buildTestAxial()
	edges := [][]SegmentEdge{
		{{Other: 1, Junction: 0, AngleDegrees: 0}},
		{{Other: 0, Junction: 0, AngleDegrees: 0}, {Other: 2, Junction: 1, AngleDegrees: 90}},
		{{Other: 1, Junction: 1, AngleDegrees: 90}},
	}
	sg := NewSegmentGraph(axial, edges)
	assert.Equal(t, 3, sg.SegmentCount())
	assert.Equal(t, 2, sg.Degree(1))

	_, err := sg.Edges(99)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestGroupGraphFourColorAvoidsAdjacentCollisions(t *testing.T) {
	axial := buildTestAxial()
	sg := NewSegmentGraph(axial, [][]SegmentEdge{{}, {}, {}})
	// A 4-node cycle 0-1-2-3-0 that should color without adjacent clashes.
	members := [][]SegmentID{{0}, {1}, {2}, {3}}
	edges := [][]GroupEdge{
		{{Other: 1, MinAngleDeg: 10}, {Other: 3, MinAngleDeg: 10}},
		{{Other: 0, MinAngleDeg: 10}, {Other: 2, MinAngleDeg: 10}},
		{{Other: 1, MinAngleDeg: 10}, {Other: 3, MinAngleDeg: 10}},
		{{Other: 2, MinAngleDeg: 10}, {Other: 0, MinAngleDeg: 10}},
	}
	gg := NewGroupGraph(sg, []GroupID{0, 1, 2, 3}, members, edges)
	gg.FourColor()
	require.Len(t, gg.Colors, 4)
	for i := 0; i < 4; i++ {
		es, err := gg.Edges(GroupID(i))
		require.NoError(t, err)
		for _, e := range es {
			assert.NotEqual(t, gg.Color(GroupID(i)), gg.Color(e.Other))
		}
	}

	assert.Equal(t, -1, gg.Color(99))
	_, err := gg.Edges(99)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
