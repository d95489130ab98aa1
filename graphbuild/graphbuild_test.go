package graphbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/geom"
)

func TestBuildAxialGraphNoLines(t *testing.T) {
	_, err := BuildAxialGraph(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoLines)
}

func TestBuildAxialGraphSimpleTJunction(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 20, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 10, Y: 10}},
	}
	g, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, g.LineCount())
	require.Equal(t, 1, g.JunctionCount())

	j, err := g.Junction(0)
	require.NoError(t, err)
	assert.Equal(t, 3, j.Degree())
}

func TestBuildAxialGraphDisjointLinesProduceNoJunction(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 100, Y: 100}, B: geom.Point{X: 110, Y: 100}},
	}
	g, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.JunctionCount())
}

func TestBuildAxialGraphUnlinkSplitsJunction(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 20, Y: 0}},
	}
	unlinks := []geom.Point{{X: 10, Y: 0}}
	g, err := BuildAxialGraph(lines, unlinks, nil, nil)
	require.NoError(t, err)
	// split into two singleton junctions instead of one shared junction.
	require.Equal(t, 2, g.JunctionCount())
	j0, _ := g.Junction(0)
	j1, _ := g.Junction(1)
	assert.Equal(t, 1, j0.Degree())
	assert.Equal(t, 1, j1.Degree())
}

func TestBuildAxialGraphAttachesPoint(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
	}
	points := []PointInput{{Position: geom.Point{X: 5, Y: 2}}}
	g, err := BuildAxialGraph(lines, nil, points, nil)
	require.NoError(t, err)
	require.Equal(t, 1, g.PointCount())
	p, err := g.Point(0)
	require.NoError(t, err)
	assert.Equal(t, 0, int(p.Line))
	assert.InDelta(t, 2, p.Distance, 1e-6)
	assert.InDelta(t, 0.5, p.FootParam, 1e-6)
}

func TestBuildAxialGraphPolygonSampledPointsTagGroup(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
	}
	poly := PolygonInput{
		Ring:           []geom.Point{{X: 4, Y: 1}, {X: 6, Y: 1}, {X: 5, Y: 3}},
		SampleInterval: 1,
	}
	g, err := BuildAxialGraph(lines, nil, nil, []PolygonInput{poly})
	require.NoError(t, err)
	require.Equal(t, 1, g.PointGroupCount())
	grp, err := g.PointGroup(0)
	require.NoError(t, err)
	assert.NotEmpty(t, grp.Points)
	for _, pid := range grp.Points {
		p, err := g.Point(pid)
		require.NoError(t, err)
		assert.Equal(t, 0, int(p.Group))
	}
}

func TestBuildSegmentGraphTurnAngles(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 20, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 10, Y: 10}},
	}
	axial, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	sg := BuildSegmentGraph(axial)
	assert.Equal(t, 3, sg.SegmentCount())

	edges, err := sg.Edges(0)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	var sawStraight, sawTurn bool
	for _, e := range edges {
		if e.Other == 1 {
			sawStraight = e.AngleDegrees < 1
		}
		if e.Other == 2 {
			sawTurn = e.AngleDegrees > 80 && e.AngleDegrees < 100
		}
	}
	assert.True(t, sawStraight, "line 0->1 should be ~straight")
	assert.True(t, sawTurn, "line 0->2 should be ~90 degrees")
}

func TestBuildGroupGraphMergesStraightSegments(t *testing.T) {
	// three co-linear segments (straight-through, angle ~0) plus a branch
	// at 90 degrees: the co-linear chain should land in one group, the
	// branch in another, under a 15-degree threshold.
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 20, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 10, Y: 10}},
	}
	axial, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	sg := BuildSegmentGraph(axial)

	gg := BuildGroupGraph(sg, WithGroupAngleThreshold(15))
	require.Equal(t, 2, gg.GroupCount())
	assert.Equal(t, gg.Segments[0], gg.Segments[1], "co-linear segments 0 and 1 must share a group")
	assert.NotEqual(t, gg.Segments[0], gg.Segments[2], "the 90-degree branch must land in its own group")
}

func TestBuildGroupGraphSymmetricAdjacency(t *testing.T) {
	lines := []LineInput{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 20, Y: 0}},
		{A: geom.Point{X: 10, Y: 0}, B: geom.Point{X: 10, Y: 10}},
	}
	axial, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	sg := BuildSegmentGraph(axial)
	gg := BuildGroupGraph(sg, WithGroupAngleThreshold(15))

	straightGroup := gg.Segments[0]
	branchGroup := gg.Segments[2]
	edges, err := gg.Edges(straightGroup)
	require.NoError(t, err)
	var sawBranch bool
	for _, e := range edges {
		if e.Other == branchGroup {
			sawBranch = true
		}
	}
	assert.True(t, sawBranch, "group adjacency must be symmetric: A's edges must list B")

	gg.FourColor()
	assert.NotEqual(t, gg.Color(straightGroup), gg.Color(branchGroup))
}

func TestBuildGroupGraphJunctionSplitFlag(t *testing.T) {
	// a 4-way junction (degree 4): with splitAtJunctions, no two segments
	// sharing it may group even at angle 0.
	lines := []LineInput{
		{A: geom.Point{X: -10, Y: 0}, B: geom.Point{X: 0, Y: 0}},
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}},
		{A: geom.Point{X: 0, Y: -10}, B: geom.Point{X: 0, Y: 0}},
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 0, Y: 10}},
	}
	axial, err := BuildAxialGraph(lines, nil, nil, nil)
	require.NoError(t, err)
	sg := BuildSegmentGraph(axial)

	gg := BuildGroupGraph(sg, WithGroupAngleThreshold(181), WithGroupJunctionSplit(true))
	assert.Equal(t, 4, gg.GroupCount(), "degree-4 junction must block all grouping when split flag is set")
}
