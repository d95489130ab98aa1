package raster

import (
	"sort"

	"github.com/placesyntax/pstgo/geom"
	"github.com/placesyntax/pstgo/gridgraph"
)

// ThresholdBand is one user-supplied value range to vectorize (spec.md
// §4.G step 5: "threshold the difference raster at user-supplied value
// ranges").
type ThresholdBand struct {
	Lo, Hi float64
}

// BandPolygons is one band's vectorized result: one polygon per connected
// blob of cells falling inside [Lo,Hi], ordered by descending area.
type BandPolygons struct {
	Band     ThresholdBand
	Polygons [][]geom.Point
}

// DefaultMinBlobCells is the blob-size floor Vectorize uses when its
// minBlobCells argument is <= 0: connected blobs smaller than this many
// cells are discarded as vectorization noise.
const DefaultMinBlobCells = 2

// Vectorize thresholds diff into bands and vectorizes each band's
// connected components into polygons (spec.md §4.G step 5).
//
// Blob connectivity is delegated to gridgraph.ConnectedComponents (the
// same connected-component labeler the module's original grid-graph
// package provides), reused here as the raster pipeline's blob-labeling
// step rather than reimplementing flood fill. Each blob's outline is then
// traced by cancelling shared cell-edges between adjacent member cells,
// a standard rectilinear boundary-tracing technique; a blob with an
// interior hole yields one extra (reversed-orientation) ring which this
// function drops, keeping only the outer boundary -- see DESIGN.md.
func Vectorize(g *Grid, bands []ThresholdBand, minBlobCells int) []BandPolygons {
	if minBlobCells <= 0 {
		minBlobCells = DefaultMinBlobCells
	}
	rows, cols := g.Dims()
	out := make([]BandPolygons, 0, len(bands))
	for _, band := range bands {
		mask := make([][]int, rows)
		for r := 0; r < rows; r++ {
			mask[r] = make([]int, cols)
			for c := 0; c < cols; c++ {
				v := g.At(r, c)
				if v >= band.Lo && v <= band.Hi {
					mask[r][c] = 1
				}
			}
		}
		gg, err := gridgraph.NewGridGraph(mask, gridgraph.DefaultGridOptions())
		if err != nil {
			out = append(out, BandPolygons{Band: band})
			continue
		}
		blobs := gg.ConnectedComponents()[1]

		var polys [][]geom.Point
		for _, blob := range blobs {
			if len(blob) < minBlobCells {
				continue
			}
			poly := outlineBlob(g, blob)
			if len(poly) >= 3 {
				polys = append(polys, poly)
			}
		}
		sort.Slice(polys, func(i, j int) bool { return geom.Area(polys[i]) > geom.Area(polys[j]) })
		out = append(out, BandPolygons{Band: band, Polygons: polys})
	}
	return out
}

type corner struct{ x, y int }

// outlineBlob traces blob's outer boundary by emitting each member cell's
// four corner-to-corner edges in a fixed clockwise order and cancelling
// any edge shared (in reverse) with an adjacent member cell; the edges
// left over form the blob's boundary ring(s).
func outlineBlob(g *Grid, blob []gridgraph.Cell) []geom.Point {
	edges := make(map[[2]corner]bool)
	for _, cell := range blob {
		tl := corner{cell.X, cell.Y}
		tr := corner{cell.X + 1, cell.Y}
		br := corner{cell.X + 1, cell.Y + 1}
		bl := corner{cell.X, cell.Y + 1}
		quad := [4]corner{tl, tr, br, bl}
		for i := 0; i < 4; i++ {
			a, b := quad[i], quad[(i+1)%4]
			rev := [2]corner{b, a}
			if edges[rev] {
				delete(edges, rev)
			} else {
				edges[[2]corner{a, b}] = true
			}
		}
	}

	next := make(map[corner]corner, len(edges))
	for e := range edges {
		next[e[0]] = e[1]
	}
	visited := make(map[corner]bool, len(next))
	var best []corner
	for start := range next {
		if visited[start] {
			continue
		}
		var ring []corner
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			ring = append(ring, cur)
			nx, ok := next[cur]
			if !ok {
				break
			}
			cur = nx
			if cur == start {
				break
			}
		}
		if len(ring) > len(best) {
			best = ring
		}
	}

	bounds := g.Bounds()
	cellSize := g.CellSize()
	out := make([]geom.Point, len(best))
	for i, c := range best {
		out[i] = geom.Point{X: bounds.MinX + float64(c.x)*cellSize, Y: bounds.MinY + float64(c.y)*cellSize}
	}
	return out
}
