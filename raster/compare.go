package raster

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/placesyntax/pstgo/geom"
)

// ErrEmptyLineSets is returned by Compare when both inputs contribute no
// bounds at all (nothing to rasterize).
var ErrEmptyLineSets = errors.New("raster: both line sets are empty")

// CompareMode selects the difference normalization of spec.md §4.G step 4.
type CompareMode int

const (
	// RelativeToCell normalizes each cell by max(|a|,|b|,eps): (b-a)/max(|a|,|b|,eps).
	RelativeToCell CompareMode = iota
	// RelativeToGlobalMax normalizes by the single largest |b-a| over the
	// whole grid: (b-a)/max_abs_difference.
	RelativeToGlobalMax
)

// CompareResult is the output of Compare: the two source grids (for
// downstream thresholding/vectorization against a consistent coordinate
// frame) and the normalized difference grid.
type CompareResult struct {
	A, B, Diff *Grid
}

// Compare runs spec.md §4.G's raster-compare pipeline end to end: combined
// bounding box, rasterize both line sets, Gaussian blur each with sigma,
// then difference per CompareMode.
func Compare(a, b []WeightedLine, sigma, cellSize float64, mode CompareMode) (CompareResult, error) {
	boundsA := lineSetBounds(a)
	boundsB := lineSetBounds(b)
	if !boundsA.Valid() && !boundsB.Valid() {
		return CompareResult{}, ErrEmptyLineSets
	}
	combined := unionBounds(boundsA, boundsB, 3*sigma)

	rawA := RasterizeLines(combined, cellSize, a)
	rawB := RasterizeLines(combined, cellSize, b)
	blurredA := GaussianBlur(rawA, sigma)
	blurredB := GaussianBlur(rawB, sigma)

	diff := diffGrids(blurredA, blurredB, mode)
	return CompareResult{A: blurredA, B: blurredB, Diff: diff}, nil
}

func lineSetBounds(lines []WeightedLine) geom.BBox {
	bounds := geom.EmptyBBox()
	for _, ln := range lines {
		bounds.ExpandPoint(ln.A)
		bounds.ExpandPoint(ln.B)
	}
	return bounds
}

// epsilonFloor returns a numeric floor for the per-cell normalization,
// derived from the standard deviation of both grids' values via
// gonum/stat rather than a bare hardcoded constant (spec.md §4.G step 4:
// "max(|a|,|b|,epsilon)").
func epsilonFloor(a, b *Grid) float64 {
	values := append(append([]float64{}, a.Values()...), b.Values()...)
	if len(values) == 0 {
		return 1e-9
	}
	sd := stat.StdDev(values, nil)
	eps := sd * 1e-6
	if eps < 1e-9 {
		eps = 1e-9
	}
	return eps
}

func diffGrids(a, b *Grid, mode CompareMode) *Grid {
	rows, cols := a.Dims()
	out := NewGrid(a.bounds, a.cellSize)
	switch mode {
	case RelativeToGlobalMax:
		maxAbs := 0.0
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				d := math.Abs(b.At(r, c) - a.At(r, c))
				if d > maxAbs {
					maxAbs = d
				}
			}
		}
		if maxAbs < 1e-12 {
			maxAbs = 1
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out.Set(r, c, (b.At(r, c)-a.At(r, c))/maxAbs)
			}
		}
	default:
		eps := epsilonFloor(a, b)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				av, bv := a.At(r, c), b.At(r, c)
				denom := math.Max(math.Max(math.Abs(av), math.Abs(bv)), eps)
				out.Set(r, c, (bv-av)/denom)
			}
		}
	}
	return out
}
