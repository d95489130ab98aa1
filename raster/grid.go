// Package raster implements the raster-compare pipeline (spec.md §4.G):
// rasterizing two weighted line sets into floating-point grids, Gaussian
// blurring each, differencing, and vectorizing the thresholded difference
// back into polygons.
package raster

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/placesyntax/pstgo/geom"
)

// Grid is a floating-point raster backed by a dense matrix (spec.md §4.G:
// "rasterize ... into floating-point buffers"). Row 0 is the grid's
// minimum-Y edge; column 0 its minimum-X edge.
type Grid struct {
	data     *mat.Dense
	bounds   geom.BBox
	cellSize float64
}

// NewGrid allocates a zeroed Grid covering bounds at the given cell size.
func NewGrid(bounds geom.BBox, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(bounds.Width() / cellSize))
	rows := int(math.Ceil(bounds.Height() / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{data: mat.NewDense(rows, cols, nil), bounds: bounds, cellSize: cellSize}
}

// Dims returns (rows, cols).
func (g *Grid) Dims() (int, int) { return g.data.Dims() }

// At returns the value at cell (row, col).
func (g *Grid) At(row, col int) float64 { return g.data.At(row, col) }

// Set assigns the value at cell (row, col).
func (g *Grid) Set(row, col int, v float64) { g.data.Set(row, col, v) }

// Add accumulates delta into cell (row, col).
func (g *Grid) Add(row, col int, delta float64) { g.data.Set(row, col, g.data.At(row, col)+delta) }

// Bounds returns the grid's world-space extent.
func (g *Grid) Bounds() geom.BBox { return g.bounds }

// CellSize returns the grid's pixel size in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// CellCenter returns the world-space coordinate of cell (row, col)'s center.
func (g *Grid) CellCenter(row, col int) geom.Point {
	return geom.Point{
		X: g.bounds.MinX + (float64(col)+0.5)*g.cellSize,
		Y: g.bounds.MinY + (float64(row)+0.5)*g.cellSize,
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	rows, cols := g.data.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Copy(g.data)
	return &Grid{data: out, bounds: g.bounds, cellSize: g.cellSize}
}

// Values returns the flattened row-major cell values, mostly for tests.
func (g *Grid) Values() []float64 {
	rows, cols := g.data.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, g.data.At(r, c))
		}
	}
	return out
}

// unionBounds returns the bounding box of a and b, expanded by pad on every
// side (spec.md §4.G step 1: "combined bounding box with padding 3σ").
func unionBounds(a, b geom.BBox, pad float64) geom.BBox {
	out := a
	out.ExpandBBox(b)
	out.Pad(pad)
	return out
}
