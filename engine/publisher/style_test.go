package publisher

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = common.Color{1, 0, 0, 1}
	green = common.Color{0, 1, 0, 1}
	blue  = common.Color{0, 0, 1, 1}
)

func assertColor(t *testing.T, want, got common.Color) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "channel %d", i)
	}
}

func TestGradientEvaluate(t *testing.T) {
	g := Gradient{
		{Time: 1, Color: blue},
		{Time: 0, Color: red},
		{Time: 0.5, Color: green},
	}

	assertColor(t, red, g.Evaluate(-1))
	assertColor(t, red, g.Evaluate(0))
	assertColor(t, common.Color{0.5, 0.5, 0, 1}, g.Evaluate(0.25))
	assertColor(t, green, g.Evaluate(0.5))
	assertColor(t, common.Color{0, 0.5, 0.5, 1}, g.Evaluate(0.75))
	assertColor(t, blue, g.Evaluate(2))

	// Evaluate must not reorder the caller's keys.
	assert.Equal(t, float32(1), g[0].Time)

	assertColor(t, common.Color{1, 1, 1, 1}, Gradient{}.Evaluate(0.5))
}

func TestNewLevelStyles(t *testing.T) {
	gradA := Gradient{{Time: 0, Color: red}, {Time: 1, Color: blue}}
	gradB := Gradient{{Time: 0, Color: green}, {Time: 1, Color: red}}
	leafA := common.Color{0.2, 0.8, 0.2, 1}
	leafB := common.Color{0.1, 0.6, 0.1, 1}

	styles := NewLevelStyles(4, gradA, gradB, leafA, leafB, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, styles, 4)

	// Non-leaf levels span the whole gradient: root at 0, level above the leaves at 1.
	assertColor(t, red, styles[0].ColorA)
	assertColor(t, green, styles[0].ColorB)
	assertColor(t, common.Color{0.5, 0, 0.5, 1}, styles[1].ColorA)
	assertColor(t, blue, styles[2].ColorA)
	assertColor(t, red, styles[2].ColorB)

	assert.Equal(t, leafA, styles[3].ColorA)
	assert.Equal(t, leafB, styles[3].ColorB)

	for i, s := range styles {
		for _, v := range s.Sequence {
			assert.GreaterOrEqual(t, v, float32(0), "level %d", i)
			assert.Less(t, v, float32(1), "level %d", i)
		}
	}
	assert.NotEqual(t, styles[0].Sequence, styles[1].Sequence)
}

func TestNewLevelStylesShallowTrees(t *testing.T) {
	gradA := Gradient{{Time: 0, Color: red}, {Time: 1, Color: blue}}
	rng := rand.New(rand.NewPCG(3, 4))

	single := NewLevelStyles(1, gradA, gradA, green, green, rng)
	require.Len(t, single, 1)
	assert.Equal(t, green, single[0].ColorA)

	two := NewLevelStyles(2, gradA, gradA, green, green, rng)
	require.Len(t, two, 2)
	assertColor(t, red, two[0].ColorA)
	assert.Equal(t, green, two[1].ColorA)
}
