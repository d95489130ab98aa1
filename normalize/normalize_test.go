package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardRescales(t *testing.T) {
	out := Standard([]float64{0, 5, 10})
	assert.Equal(t, []float64{0, 0.5, 1}, out)
}

func TestStandardConstantInputIsAllZero(t *testing.T) {
	out := Standard([]float64{3, 3, 3})
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func TestStandardEmpty(t *testing.T) {
	assert.Empty(t, Standard(nil))
}

func TestTurnerGuardsZeroDepth(t *testing.T) {
	out := Turner([]float64{4, 2}, []float64{0, 8})
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.25, out[1])
}

func TestHillierGuardsZeroDepth(t *testing.T) {
	out := Hillier([]float64{0, 20}, []float64{5, 50})
	assert.Equal(t, 0.0, out[0])
	assert.Greater(t, out[1], 0.0)
}

func TestSyntaxNACHAndNAINFinite(t *testing.T) {
	choice := []float64{10, 0}
	totalDepth := []float64{20, 0}
	nach := SyntaxNACH(choice, totalDepth)
	for _, v := range nach {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}

	reached := []float64{5, 0}
	nain := SyntaxNAIN(totalDepth, reached)
	assert.Equal(t, 0.0, nain[1])
}

func TestLengthWeightElementwise(t *testing.T) {
	out := LengthWeight([]float64{2, 3}, []float64{10, 5})
	assert.Equal(t, []float64{20, 15}, out)
}
