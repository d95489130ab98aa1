// Package normalize implements the standard and Space Syntax-specific
// score normalizations applied to raw Integration/Choice accumulator
// vectors (spec.md §4.D, Network/Angular Integration; §3 supplemented
// features, WeighByLength variants).
//
// Every function here is a pure O(n) pass over a caller-allocated score
// slice; none of them allocate beyond their single return slice, so
// analyses can normalize in place by reassigning the result back into
// their accumulator.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Standard rescales raw values onto [0,1] by (v - min) / (max - min). A
// constant input (max == min) normalizes to all zeros rather than
// dividing by zero.
func Standard(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo := floats.Min(values)
	hi := floats.Max(values)
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - lo) / span
	}
	return out
}

// Turner is the Angular Choice normalization from Turner's segment
// angular analysis: raw choice divided by total depth, guarding the
// zero-total-depth case (an isolated node with no through-paths) by
// emitting 0 rather than NaN.
func Turner(choice, totalDepth []float64) []float64 {
	out := make([]float64, len(choice))
	for i := range choice {
		if totalDepth[i] <= 0 {
			out[i] = 0
			continue
		}
		out[i] = choice[i] / totalDepth[i]
	}
	return out
}

// Hillier is the "Integration [HH]" normalization (spec.md §4.D:
// "(log(N+2) / log(TD+2))-style"): log(reachedCount+2) / log(totalDepth+2),
// per node. Guards totalDepth<=0 (an isolated origin with no through-paths)
// by emitting 0 rather than dividing by log(2) against a meaningless TD.
func Hillier(totalDepth, reachedCount []float64) []float64 {
	out := make([]float64, len(totalDepth))
	for i := range totalDepth {
		if totalDepth[i] <= 0 || reachedCount[i] <= 0 {
			out[i] = 0
			continue
		}
		out[i] = math.Log(reachedCount[i]+2) / math.Log(totalDepth[i]+2)
	}
	return out
}

// SyntaxNACH applies the Syntax-software "Normalised Angular Choice"
// transform (spec.md §4.D: "log(x+1) / log(TD+2) with x = choice"):
// log(choice+1) / log(totalDepth+2).
func SyntaxNACH(choice, totalDepth []float64) []float64 {
	out := make([]float64, len(choice))
	for i := range choice {
		denom := math.Log(totalDepth[i] + 2)
		if denom <= 0 {
			out[i] = 0
			continue
		}
		out[i] = math.Log(choice[i]+1) / denom
	}
	return out
}

// SyntaxNAIN applies the same transform with x = integration (reached
// count) in place of choice (spec.md §4.D: "x = choice or integration"):
// log(reachedCount+1) / log(totalDepth+2).
func SyntaxNAIN(totalDepth, reachedCount []float64) []float64 {
	out := make([]float64, len(totalDepth))
	for i := range totalDepth {
		denom := math.Log(totalDepth[i] + 2)
		if denom <= 0 {
			out[i] = 0
			continue
		}
		out[i] = math.Log(reachedCount[i]+1) / denom
	}
	return out
}

// LengthWeight returns elementwise values[i]*lengths[i]. It is a
// standalone helper: no analysis in this module calls it, and there are
// no length-weighted variants of the normalizations above.
func LengthWeight(values, lengths []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = values[i] * lengths[i]
	}
	return out
}
