package isovist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesyntax/pstgo/geom"
)

// TestCalculateEmptyRoomMatchesEnlargedSquare reproduces spec.md §8
// scenario #6: a 4-ray isovist in open space (no obstacles) from the
// origin with R=5 must land on a square, rotated to the ray angles, whose
// area equals pi*R^2 (the enlargement factor exists exactly to cancel the
// inscribed-polygon area deficit).
func TestCalculateEmptyRoomMatchesEnlargedSquare(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	res := Calculate(ctx, Options{
		Origin:                geom.Point{X: 0, Y: 0},
		Radius:                5,
		PerimeterSegmentCount: 4,
	})
	require.Len(t, res.Polygon, 4)
	assert.InDelta(t, math.Pi*25, res.Area, 1e-6)

	enlarge := enlargementFactor(4)
	want := 5 * enlarge
	for _, p := range res.Polygon {
		assert.InDelta(t, want, p.Length(), 1e-9)
	}
}

func TestCalculateBlockedByWallStopsShortOfRadius(t *testing.T) {
	wall := []geom.Point{
		{X: 2, Y: -5}, {X: 2.2, Y: -5}, {X: 2.2, Y: 5}, {X: 2, Y: 5},
	}
	ctx := NewContext([][]geom.Point{wall}, nil, nil)
	res := Calculate(ctx, Options{
		Origin:                geom.Point{X: 0, Y: 0},
		Radius:                10,
		PerimeterSegmentCount: 16,
	})
	require.NotEmpty(t, res.ObstacleHits)
	assert.Equal(t, []int{0}, res.ObstacleHits)
	for _, p := range res.Polygon {
		if p.X > 0 && math.Abs(p.Y) < 4 {
			assert.Less(t, p.X, 3.0, "a ray through the wall must stop at or before it")
		}
	}
}

func TestCalculatePartialFOVStaysWithinAngularLimits(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	res := Calculate(ctx, Options{
		Origin:                geom.Point{X: 0, Y: 0},
		Radius:                5,
		FOVDegrees:            90,
		LookDirectionDegrees:  0,
		PerimeterSegmentCount: 8,
	})
	require.NotEmpty(t, res.Polygon)
	assert.Equal(t, res.Polygon[0], geom.Point{X: 0, Y: 0}, "a partial FOV pie-slice includes the origin as its apex")
	for _, p := range res.Polygon[1:] {
		angle := math.Atan2(p.Y, p.X) * 180 / math.Pi
		assert.GreaterOrEqual(t, angle, -45.0001)
		assert.LessOrEqual(t, angle, 45.0001)
	}
}

func TestCalculateAttractionHitsInsideAndOutsidePolygon(t *testing.T) {
	points := []geom.Point{
		{X: 1, Y: 0},  // inside a 5m-radius open isovist
		{X: 50, Y: 0}, // well outside
	}
	ctx := NewContext(nil, points, nil)
	res := Calculate(ctx, Options{
		Origin:                geom.Point{X: 0, Y: 0},
		Radius:                5,
		PerimeterSegmentCount: 32,
	})
	assert.Equal(t, []int{0}, res.AttractionPointHits)
}

func TestEnlargementFactorMatchesClosedForm(t *testing.T) {
	got := enlargementFactor(4)
	want := math.Sqrt(math.Pi / (4 * math.Sin(math.Pi/4) * math.Cos(math.Pi/4)))
	assert.InDelta(t, want, got, 1e-12)
}

func TestNewContextWithNoGeometryIsUsable(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	res := Calculate(ctx, Options{Origin: geom.Point{X: 0, Y: 0}, Radius: 1, PerimeterSegmentCount: 6})
	assert.Len(t, res.Polygon, 6)
}
