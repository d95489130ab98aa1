package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/placesyntax/pstgo/geom"
)

// WeightedLine is one input segment to rasterize, carrying the scalar
// value spread along it (an integration/choice/attraction score, per
// spec.md §4.G: "two (lines, values) sets").
type WeightedLine struct {
	A, B  geom.Point
	Value float64
}

// RasterizeLines splats every line's value into a Grid, weighted by how
// much of each pixel the line's stroke covers (spec.md §4.G step 2: "the
// sum of value * edge_length_in_pixel for each line segment it
// intersects"). Coverage is computed with golang.org/x/image/vector's
// antialiased scanline rasterizer applied to a one-pixel-wide stroked
// quad per segment: the resulting alpha fraction approximates
// edge_length_in_pixel/cellSize for a thin stroke, so
// value*alpha*cellSize approximates value*edge_length_in_pixel.
//
// Complexity: O(len(lines) * rows * cols) -- acceptable for the grid
// sizes a pixel-size-driven raster compare produces; see DESIGN.md.
func RasterizeLines(bounds geom.BBox, cellSize float64, lines []WeightedLine) *Grid {
	g := NewGrid(bounds, cellSize)
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return g
	}
	src := image.NewUniform(color.Alpha{A: 255})
	r := vector.NewRasterizer(cols, rows)
	dst := image.NewAlpha(image.Rect(0, 0, cols, rows))
	for _, ln := range lines {
		if ln.Value == 0 {
			continue
		}
		ax, ay := g.toPixel(ln.A)
		bx, by := g.toPixel(ln.B)
		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		var nx, ny float32
		if length > 1e-6 {
			nx, ny = -dy/length*0.5, dx/length*0.5
		} else {
			ny = 0.5
		}

		r.Reset(cols, rows)
		r.MoveTo(ax+nx, ay+ny)
		r.LineTo(bx+nx, by+ny)
		r.LineTo(bx-nx, by-ny)
		r.LineTo(ax-nx, ay-ny)
		r.ClosePath()
		for i := range dst.Pix {
			dst.Pix[i] = 0
		}
		r.Draw(dst, dst.Bounds(), src, image.Point{})

		for row := 0; row < rows; row++ {
			base := row * dst.Stride
			for col := 0; col < cols; col++ {
				a := dst.Pix[base+col]
				if a == 0 {
					continue
				}
				coverage := float64(a) / 255
				g.Add(row, col, ln.Value*coverage*cellSize)
			}
		}
	}
	return g
}

func (g *Grid) toPixel(p geom.Point) (float32, float32) {
	return float32((p.X - g.bounds.MinX) / g.cellSize), float32((p.Y - g.bounds.MinY) / g.cellSize)
}
