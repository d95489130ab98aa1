package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/geom"
)

func TestRasterizeLinesPutsWeightNearTheLine(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	lines := []WeightedLine{{A: geom.Point{X: 0, Y: 5}, B: geom.Point{X: 10, Y: 5}, Value: 2}}
	g := RasterizeLines(bounds, 1, lines)
	rows, cols := g.Dims()
	require.Equal(t, 10, rows)
	require.Equal(t, 10, cols)

	var onLine, farFromLine float64
	for c := 0; c < cols; c++ {
		onLine += g.At(4, c) // row straddling y=5 (cells [4,5))
		farFromLine += g.At(0, c)
	}
	assert.Greater(t, onLine, 0.0)
	assert.Equal(t, 0.0, farFromLine)
}

func TestGaussianBlurPreservesTotalMassAwayFromEdges(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 21, MaxY: 21}
	g := NewGrid(bounds, 1)
	g.Set(10, 10, 100)

	blurred := GaussianBlur(g, 1.5)
	var before, after float64
	rows, cols := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			before += g.At(r, c)
			after += blurred.At(r, c)
		}
	}
	assert.InDelta(t, before, after, 1e-6)
	assert.Less(t, blurred.At(10, 10), 100.0, "blur must spread the spike out")
	assert.Greater(t, blurred.At(10, 11), 0.0, "a neighboring cell must pick up some of the spike")
}

func TestGaussianBlurZeroSigmaIsIdentity(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}
	g := NewGrid(bounds, 1)
	g.Set(2, 2, 7)
	blurred := GaussianBlur(g, 0)
	assert.Equal(t, g.At(2, 2), blurred.At(2, 2))
}

func TestCompareRelativeToCellSignMatchesIncrease(t *testing.T) {
	a := []WeightedLine{{A: geom.Point{X: 0, Y: 5}, B: geom.Point{X: 10, Y: 5}, Value: 1}}
	b := []WeightedLine{{A: geom.Point{X: 0, Y: 5}, B: geom.Point{X: 10, Y: 5}, Value: 3}}
	res, err := Compare(a, b, 0.5, 1, RelativeToCell)
	require.NoError(t, err)
	rows, cols := res.Diff.Dims()
	var sawPositive bool
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if res.Diff.At(r, c) > 0 {
				sawPositive = true
			}
		}
	}
	assert.True(t, sawPositive, "b has strictly higher value everywhere along the line, so the diff must be positive somewhere")
}

func TestCompareEmptyLineSetsErrors(t *testing.T) {
	_, err := Compare(nil, nil, 1, 1, RelativeToCell)
	assert.ErrorIs(t, err, ErrEmptyLineSets)
}

func TestVectorizeFindsSquareBlob(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	g := NewGrid(bounds, 1)
	for _, rc := range [][2]int{{3, 3}, {3, 4}, {4, 3}, {4, 4}} {
		g.Set(rc[0], rc[1], 5)
	}
	bands := Vectorize(g, []ThresholdBand{{Lo: 4, Hi: 6}}, 1)
	require.Len(t, bands, 1)
	require.Len(t, bands[0].Polygons, 1)
	assert.InDelta(t, 4, geom.Area(bands[0].Polygons[0]), 1e-9)
}

func TestVectorizeDropsBlobsBelowMinSize(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	g := NewGrid(bounds, 1)
	g.Set(1, 1, 5)
	bands := Vectorize(g, []ThresholdBand{{Lo: 4, Hi: 6}}, 2)
	require.Len(t, bands, 1)
	assert.Empty(t, bands[0].Polygons)
}

func TestGaussianKernel1DIsNormalized(t *testing.T) {
	k := gaussianKernel1D(2)
	var sum float64
	for _, v := range k {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestRasterizeLinesSkipsZeroValueLines(t *testing.T) {
	bounds := geom.BBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}
	g := RasterizeLines(bounds, 1, []WeightedLine{{A: geom.Point{X: 0, Y: 2}, B: geom.Point{X: 5, Y: 2}, Value: 0}})
	for _, v := range g.Values() {
		assert.Equal(t, 0.0, v)
	}
}

func TestUnionBoundsPadsCombinedExtent(t *testing.T) {
	a := geom.BBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := geom.BBox{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6}
	u := unionBounds(a, b, 2)
	assert.InDelta(t, -2, u.MinX, 1e-9)
	assert.InDelta(t, 8, u.MaxX, 1e-9)
}
