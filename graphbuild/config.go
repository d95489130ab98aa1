// Package graphbuild turns raw caller-supplied coordinates into the
// AxialGraph/SegmentGraph/GroupGraph arenas defined in package core
// (spec.md §4.B). BuildAxialGraph implements the axial graph build
// algorithm verbatim: endpoint clustering into junctions via a uniform
// grid, unlink-point junction-splitting, and point/polygon origin
// attachment by perpendicular projection.
package graphbuild

import (
	"errors"

	"github.com/placesyntax/pstgo/geom"
)

// Sentinel errors returned by Build functions (spec.md §7's BadInput /
// MemoryLimit kinds are mapped onto these at the pstgo facade boundary).
var (
	// ErrNoLines indicates fewer than one line was supplied.
	ErrNoLines = errors.New("graphbuild: at least one line is required")

	// ErrTooManyEntities indicates an index would exceed the 32-bit
	// handle space (spec.md §4.B: "Fails with MemoryLimit if indices
	// exceed 2^32").
	ErrTooManyEntities = errors.New("graphbuild: entity count exceeds 32-bit index space")

	// ErrBadTolerance indicates a non-positive snap or search tolerance.
	ErrBadTolerance = errors.New("graphbuild: tolerance must be positive")
)

const maxIndex = 1<<32 - 1

// Option configures BuildAxialGraph. Mirrors the functional-options
// shape used throughout this codebase (radius.Mask.With, GroupOption) so
// every configuration surface reads the same way.
type Option func(*config)

type config struct {
	snapTolerance   float64
	unlinkTolerance float64
	pointSearch     float64
	gridCellSize    float64
	unlinks         []geom.Point
}

// hasUnlinkNear reports whether any unlink point lies within
// unlinkTolerance of pos. Unlink lists are small (one per deliberately
// disconnected crossing in the source data), so a linear scan is
// adequate; no grid acceleration is warranted.
func (c config) hasUnlinkNear(pos geom.Point) bool {
	for _, u := range c.unlinks {
		if pos.Distance(u) <= c.unlinkTolerance {
			return true
		}
	}
	return false
}

// DefaultConfig returns the defaults used when no options are supplied:
// a 0.01-unit snap tolerance (sub-centimeter at meter scale), unlink
// tolerance equal to snap tolerance, a point search radius of 50 units,
// and an auto-sized grid (cellSize<=0 lets geom.NewGrid infer one from
// the scene bounds).
func DefaultConfig() config {
	return config{
		snapTolerance:   0.01,
		unlinkTolerance: 0.01,
		pointSearch:     50,
		gridCellSize:    0,
	}
}

// WithSnapTolerance sets the distance within which line endpoints are
// clustered into one junction.
func WithSnapTolerance(t float64) Option {
	return func(c *config) { c.snapTolerance = t }
}

// WithUnlinkTolerance sets the distance within which an unlink point
// matches a junction and splits it.
func WithUnlinkTolerance(t float64) Option {
	return func(c *config) { c.unlinkTolerance = t }
}

// WithPointSearchRadius sets the maximum distance a point may be from a
// line to be attached to it.
func WithPointSearchRadius(r float64) Option {
	return func(c *config) { c.pointSearch = r }
}

// WithGridCellSize overrides the broad-phase grid's cell size; <=0
// (the default) auto-sizes from the scene bounds.
func WithGridCellSize(s float64) Option {
	return func(c *config) { c.gridCellSize = s }
}

func resolve(opts []Option) (config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.snapTolerance <= 0 || cfg.unlinkTolerance <= 0 || cfg.pointSearch <= 0 {
		return config{}, ErrBadTolerance
	}
	return cfg, nil
}
