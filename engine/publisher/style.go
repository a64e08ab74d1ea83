package publisher

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/Carmen-Shannon/oxy-fractal/engine/fractal"
)

// LevelStyle is the per-level render metadata passed alongside a frame. It never affects the simulation.
type LevelStyle struct {
	ColorA, ColorB common.Color
	// Sequence is a random 4-vector the shader uses to vary instances of the level.
	Sequence [4]float32
}

// GradientKey is a color stop of a Gradient at a time in [0, 1].
type GradientKey struct {
	Time  float32
	Color common.Color
}

// Gradient is a piecewise linear color ramp. Keys need not be sorted.
type Gradient []GradientKey

// Evaluate returns the gradient color at t. Values before the first key or after the last key
// take that key's color; an empty gradient evaluates to opaque white.
//
// Parameters:
//   - t: the position along the gradient
//
// Returns:
//   - common.Color: the interpolated color
func (g Gradient) Evaluate(t float32) common.Color {
	if len(g) == 0 {
		return common.Color{1, 1, 1, 1}
	}
	keys := make(Gradient, len(g))
	copy(keys, g)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Time < keys[j].Time })

	if t <= keys[0].Time {
		return keys[0].Color
	}
	for i := 1; i < len(keys); i++ {
		if t <= keys[i].Time {
			prev, next := keys[i-1], keys[i]
			span := next.Time - prev.Time
			if span <= 0 {
				return next.Color
			}
			return prev.Color.Lerp(next.Color, (t-prev.Time)/span)
		}
	}
	return keys[len(keys)-1].Color
}

// NewLevelStyles builds one style per level of a tree of the given depth. Levels above the leaves
// sample gradientA and gradientB from 0 at the root to 1 at the level just above the leaves; the
// deepest level uses the dedicated leaf colors. Each level gets a fresh random sequence vector.
//
// Parameters:
//   - depth: the number of levels
//   - gradientA, gradientB: the gradients for the first and second color of non-leaf levels
//   - leafA, leafB: the color pair of the deepest level
//   - rng: the source of the sequence vectors
//
// Returns:
//   - []LevelStyle: one style per level, root first
func NewLevelStyles(depth int, gradientA, gradientB Gradient, leafA, leafB common.Color, rng fractal.RandomSource) []LevelStyle {
	styles := make([]LevelStyle, depth)
	leaf := depth - 1
	for i := range styles {
		if i == leaf {
			styles[i].ColorA, styles[i].ColorB = leafA, leafB
		} else {
			var t float32
			if depth > 2 {
				t = float32(i) / float32(depth-2)
			}
			styles[i].ColorA = gradientA.Evaluate(t)
			styles[i].ColorB = gradientB.Evaluate(t)
		}
		styles[i].Sequence = [4]float32{rng.Float32(), rng.Float32(), rng.Float32(), rng.Float32()}
	}
	return styles
}
