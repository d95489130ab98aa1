// Package geom provides the 2-D vector primitives and the uniform-grid
// spatial index shared by the graph builder, the isovist engine, and the
// raster pipeline.
//
// Every coordinate in pstgo is a pair of float64 in a single planar metric
// coordinate system (no projection handling, see the module's Non-goals).
// Package geom keeps that contract in one place: Point, Segment, BBox,
// segment-segment intersection, point-to-segment projection, polygon area,
// and the Grid broad-phase index.
//
// Complexity notes follow the convention used throughout this module
// (see core, traverse): each exported function documents its Big-O.
package geom
