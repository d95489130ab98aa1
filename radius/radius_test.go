package radius

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMaskAndSemantics(t *testing.T) {
	m := New().With(TagStraight, 100).With(TagSteps, 3)

	within := Depth{}.Set(TagStraight, 50).Set(TagSteps, 2)
	assert.True(t, within.Within(m))

	overStraight := Depth{}.Set(TagStraight, 150).Set(TagSteps, 2)
	assert.False(t, overStraight.Within(m))

	overSteps := Depth{}.Set(TagStraight, 50).Set(TagSteps, 5)
	assert.False(t, overSteps.Within(m))
}

func TestMaskNegativeLimitClampsToZero(t *testing.T) {
	m := New().With(TagWalking, -5)
	assert.Equal(t, 0.0, m.Limit(TagWalking))
	assert.False(t, Depth{}.Set(TagWalking, 0.001).Within(m))
	assert.True(t, Depth{}.Within(m))
}

func TestEmptyMaskIsUnbounded(t *testing.T) {
	m := New()
	assert.False(t, m.AnyActive())
	d := Depth{1e9, 1e9, 1e9, 1e9, 1e9, 1e9}
	assert.True(t, d.Within(m))
}

// TestMaskMonotoneUnderInclusion checks spec.md §8's radius-mask
// monotonicity invariant: adding more active tags to a mask (tightening
// it) can only shrink the set of depths it accepts, never grow it.
func TestMaskMonotoneUnderInclusion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := New()
		tag := Tag(rapid.IntRange(0, int(tagCount-1)).Draw(rt, "tag"))
		limit := rapid.Float64Range(0, 1000).Draw(rt, "limit")
		tightened := base.With(tag, limit)

		var d Depth
		for i := range d {
			d[i] = rapid.Float64Range(0, 2000).Draw(rt, "depth")
		}
		if d.Within(tightened) {
			assert.True(rt, d.Within(base))
		}
	})
}

func TestDepthAddAccumulates(t *testing.T) {
	a := Depth{}.Set(TagStraight, 10)
	b := Depth{}.Set(TagStraight, 5).Set(TagSteps, 1)
	c := a.Add(b)
	assert.Equal(t, 15.0, c.Get(TagStraight))
	assert.Equal(t, 1.0, c.Get(TagSteps))
}
