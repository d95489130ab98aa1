// Package pstgo is the descriptor-style façade matching spec.md §6's
// external interface table: one function per contract-level call, each
// validating its descriptor and mapping internal errors onto the §7 error
// kinds, while the packages underneath keep normal idiomatic Go sentinel
// errors (spec.md §1, "ambient stack").
package pstgo

import (
	"context"
	"errors"
	"fmt"

	"github.com/placesyntax/pstgo/traverse"
)

// Kind is one of spec.md §7's six error kinds.
type Kind int

const (
	KindBadInput Kind = iota
	KindUnreachable
	KindNumericDegeneracy
	KindMemoryLimit
	KindCancelled
	KindVersionMismatch
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "BadInput"
	case KindUnreachable:
		return "Unreachable"
	case KindNumericDegeneracy:
		return "NumericDegeneracy"
	case KindMemoryLimit:
		return "MemoryLimit"
	case KindCancelled:
		return "Cancelled"
	case KindVersionMismatch:
		return "VersionMismatch"
	default:
		return "Unknown"
	}
}

// AnalysisError is the façade's uniform error type: every function in
// this package that fails returns one, wrapping the underlying internal
// sentinel so callers can still errors.Is/As through it.
type AnalysisError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("pstgo: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &AnalysisError{Kind: classify(err), Op: op, Err: err}
}

// classify maps an internal error onto the §7 kind contract. Context
// cancellation is the one case every internal package can produce
// (traverse.Run returns ctx.Err() verbatim), so it is checked first;
// everything else defaults to BadInput, the kind for "descriptor/graph
// state the caller handed us was not usable."
func classify(err error) Kind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, traverse.ErrCancelled) {
		return KindCancelled
	}
	if errors.Is(err, traverse.ErrNilGraph) || errors.Is(err, traverse.ErrBadSource) {
		return KindBadInput
	}
	return KindBadInput
}
