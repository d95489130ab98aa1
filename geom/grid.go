package geom

import "math"

// Grid is a uniform-grid broad-phase spatial index (spec.md §4.A). It
// partitions a bounded scene into equally sized square cells and records,
// per cell, the indices of every entity whose bounding box touches it.
// Query returns a candidate set whose false-positive rate is bounded by
// cell size; callers refine with exact geometric tests.
//
// Grid is created by NewGrid, filled by Insert, and only queried afterwards, matching the
// "read-only after construction, safe for concurrent queries" contract
// shared by every long-lived handle in this module (spec.md §5).
type Grid struct {
	bounds   BBox
	cellSize float64
	cols     int
	rows     int
	cells    map[int64][]int32
}

// NewGrid builds a Grid over bounds, sized so each cell is roughly
// cellSize on a side (cellSize <= 0 defaults to 1% of the bounds'
// longest side, or to 1 when the bounds have zero extent, which gives a
// one-cell grid). Complexity: O(1) (cells are populated lazily by
// Insert).
func NewGrid(bounds BBox, cellSize float64) *Grid {
	if !bounds.Valid() {
		bounds = BBox{}
	}
	if cellSize <= 0 {
		longest := math.Max(bounds.Width(), bounds.Height())
		cellSize = longest / 100
		if cellSize <= 0 {
			cellSize = 1
		}
	}
	cols := int(math.Ceil(bounds.Width()/cellSize)) + 1
	rows := int(math.Ceil(bounds.Height()/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		bounds:   bounds,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make(map[int64][]int32),
	}
}

func (g *Grid) cellCoord(p Point) (int, int) {
	cx := int((p.X - g.bounds.MinX) / g.cellSize)
	cy := int((p.Y - g.bounds.MinY) / g.cellSize)
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

func (g *Grid) key(cx, cy int) int64 {
	return int64(cy)*int64(g.cols) + int64(cx)
}

// Insert records entity id as touching every cell overlapped by box.
// Complexity: O(cells overlapped by box).
func (g *Grid) Insert(id int32, box BBox) {
	x0, y0 := g.cellCoord(Point{box.MinX, box.MinY})
	x1, y1 := g.cellCoord(Point{box.MaxX, box.MaxY})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			k := g.key(x, y)
			g.cells[k] = append(g.cells[k], id)
		}
	}
}

// Query returns the (deduplicated) candidate set of entity ids whose
// bounding boxes may intersect box. Complexity: O(cells overlapped by box
// + candidates found).
func (g *Grid) Query(box BBox) []int32 {
	x0, y0 := g.cellCoord(Point{box.MinX, box.MinY})
	x1, y1 := g.cellCoord(Point{box.MaxX, box.MaxY})
	seen := make(map[int32]struct{})
	var out []int32
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, id := range g.cells[g.key(x, y)] {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

// QueryRadius returns the candidate set of entity ids whose bounding boxes
// may intersect the disc of the given radius centered at p. It is a thin
// convenience over Query with a square box, used by nearest-neighbor
// searches (graph builder point attachment, isovist candidate culling).
func (g *Grid) QueryRadius(p Point, radius float64) []int32 {
	box := BBox{MinX: p.X - radius, MinY: p.Y - radius, MaxX: p.X + radius, MaxY: p.Y + radius}
	return g.Query(box)
}

// CellSize returns the grid's cell size, mostly useful for tests.
func (g *Grid) CellSize() float64 { return g.cellSize }
