package pstgo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/analysis/betweenness"
	"github.com/placesyntax/pstgo/callback"
	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
	"github.com/placesyntax/pstgo/graphbuild"
	"github.com/placesyntax/pstgo/isovist"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/raster"
	"github.com/placesyntax/pstgo/traverse"
)

func lineIDRange(n int) []core.LineID {
	out := make([]core.LineID, n)
	for i := range out {
		out[i] = core.LineID(i)
	}
	return out
}

func segmentIDRange(n int) []core.SegmentID {
	out := make([]core.SegmentID, n)
	for i := range out {
		out[i] = core.SegmentID(i)
	}
	return out
}

func nodeIDRange(n int) []traverse.NodeID {
	out := make([]traverse.NodeID, n)
	for i := range out {
		out[i] = traverse.NodeID(i)
	}
	return out
}

// chainDescriptor builds a straight five-line chain:
// (0,0)-(1,0)-(2,0)-(3,0)-(4,0)-(5,0), the same shape used across the
// analysis packages' own tests for the spec.md §8 five-chain scenarios.
func chainDescriptor() GraphDescriptor {
	pt := func(x float64) geom.Point { return geom.Point{X: x, Y: 0} }
	var lines []graphbuild.LineInput
	for i := 0; i < 5; i++ {
		lines = append(lines, graphbuild.LineInput{A: pt(float64(i)), B: pt(float64(i + 1))})
	}
	return GraphDescriptor{Lines: lines, SnapTolerance: 1e-6}
}

func TestCreateGraphAndGetGraphInfoRoundTrip(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	info, err := GetGraphInfo(g)
	require.NoError(t, err)
	assert.Equal(t, 5, info.LineCount)
	assert.Equal(t, 4, info.JunctionCount)
}

func TestCreateGraphRejectsEmptyLineSet(t *testing.T) {
	_, err := CreateGraph(GraphDescriptor{})
	require.Error(t, err)
	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindBadInput, aerr.Kind)
}

func TestGetGraphInfoRejectsNilGraph(t *testing.T) {
	_, err := GetGraphInfo(nil)
	require.Error(t, err)
}

func TestCreateSegmentGraphAndSegmentGroupGraph(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	seg, err := CreateSegmentGraph(g)
	require.NoError(t, err)
	assert.Equal(t, 5, seg.SegmentCount())

	gg, err := CreateSegmentGroupGraph(seg, GroupDescriptor{AngleThreshold: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, len(gg.Segments))
}

func TestCreateSegmentMapCleansDanglingTail(t *testing.T) {
	desc := SegmentMapDescriptor{
		Polylines: [][]geom.Point{
			{{X: 0, Y: 0}, {X: 10, Y: 0}},
			{{X: 10, Y: 0}, {X: 10.01, Y: 0.2}},
		},
		Snap: 0.05,
		Tail: 1,
	}
	res, err := CreateSegmentMap(desc)
	require.NoError(t, err)
	assert.Len(t, res.Segments, 1, "the short dangling tail must be trimmed")
}

func TestCreateJunctionsReportsDegreeThreeOnly(t *testing.T) {
	desc := GraphDescriptor{
		Lines: []graphbuild.LineInput{
			{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1, Y: 0}},
			{A: geom.Point{X: 1, Y: 0}, B: geom.Point{X: 2, Y: 0}},
			{A: geom.Point{X: 1, Y: 0}, B: geom.Point{X: 1, Y: 1}},
		},
		SnapTolerance: 1e-6,
	}
	g, err := CreateGraph(desc)
	require.NoError(t, err)
	junctions, err := CreateJunctions(g)
	require.NoError(t, err)
	assert.Len(t, junctions, 1)
}

func TestReachOverFiveChain(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	res, err := Reach(context.Background(), g, ReachDescriptor{
		Origins:   lineIDRange(5),
		RadiusTag: []TagLimit{{Tag: radius.TagSteps, Limit: 10}},
	})
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, 5, res[2].Count, "origin 2 reaches every line within 10 steps")
}

func TestNetworkIntegrationOverFiveChain(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	res, err := NetworkIntegration(context.Background(), g, lineIDRange(5), IntegrationDescriptor{})
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, 5, res[2].N)
}

func TestAngularChoiceAndFastAngularChoiceAgreeOnMiddleSegment(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	seg, err := CreateSegmentGraph(g)
	require.NoError(t, err)

	exact, err := AngularChoice(context.Background(), seg, nil)
	require.NoError(t, err)
	fast, err := FastAngularChoice(context.Background(), seg, nil)
	require.NoError(t, err)
	require.Len(t, exact, 5)
	require.Len(t, fast, 5)
	assert.Greater(t, exact[2], exact[0], "the middle segment sits on strictly more shortest paths than an end segment")
	assert.Greater(t, fast[2], fast[0])
}

func TestSegmentBetweennessRejectsBadDistanceType(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	seg, err := CreateSegmentGraph(g)
	require.NoError(t, err)

	_, err = SegmentBetweenness(context.Background(), seg, BetweennessDescriptor{
		Sources: segmentIDRange(5),
		RankTag: radius.Tag(99),
	})
	require.Error(t, err)
	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindBadInput, aerr.Kind)
}

func TestODBetweennessViaFacade(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	seg, err := CreateSegmentGraph(g)
	require.NoError(t, err)

	res, err := ODBetweenness(context.Background(), segmentAdapter{g: seg}, ODBetweennessDescriptor{
		Origins:      []betweenness.WeightedNode{{Node: 0, Weight: 1}},
		Destinations: []betweenness.WeightedNode{{Node: 4, Weight: 1}},
		RankTag:      radius.TagSteps,
		Mode:         betweenness.DestAll,
	})
	require.NoError(t, err)
	assert.Greater(t, res[2], 0.0, "segment 2 lies on the only path from 0 to 4")
}

func TestAttractionDistanceViaFacade(t *testing.T) {
	g, err := CreateGraph(chainDescriptor())
	require.NoError(t, err)
	seg, err := CreateSegmentGraph(g)
	require.NoError(t, err)

	res, err := AttractionDistance(context.Background(), segmentAdapter{g: seg}, AttractionDistanceDescriptor{
		Origins:     nodeIDRange(5),
		Attractions: []AttractionPoint{{Node: 4, Value: 1, Group: -1}},
		RankTag:     radius.TagSteps,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res[4])
	assert.Equal(t, 2.0, res[2])
}

func TestCreateIsovistContextAndCalculate(t *testing.T) {
	ctx := CreateIsovistContext(IsovistDescriptor{})
	res, err := CalculateIsovist(ctx, isovist.Options{
		Origin:                geom.Point{X: 0, Y: 0},
		Radius:                5,
		FOVDegrees:            360,
		PerimeterSegmentCount: 4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 78.5398, res.Area, 0.01)
}

func TestCalculateIsovistRejectsNilContext(t *testing.T) {
	_, err := CalculateIsovist(nil, isovist.Options{})
	require.Error(t, err)
}

func TestCompareResultsAndRasterToPolygons(t *testing.T) {
	a := []raster.WeightedLine{{A: geom.Point{X: 0, Y: 5}, B: geom.Point{X: 10, Y: 5}, Value: 1}}
	b := []raster.WeightedLine{{A: geom.Point{X: 0, Y: 5}, B: geom.Point{X: 10, Y: 5}, Value: 5}}
	res, err := CompareResults(CompareDescriptor{A: a, B: b, Sigma: 0.5, CellSize: 1, Mode: raster.RelativeToCell})
	require.NoError(t, err)

	bands := RasterToPolygons(res, []raster.ThresholdBand{{Lo: 0.1, Hi: 1}}, 1)
	require.Len(t, bands, 1)
}

func TestRegisterLogCallbackReceivesFacadeEvents(t *testing.T) {
	var got []string
	h := RegisterLogCallback(func(level callback.Level, domain, message string) {
		got = append(got, domain)
	})
	defer Unregister(h)

	_, err := CreateGraph(GraphDescriptor{})
	require.Error(t, err)
	_, err2 := CreateGraph(chainDescriptor())
	require.NoError(t, err2)
	assert.Contains(t, got, "CreateGraph")
}

