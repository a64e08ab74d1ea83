package fractal

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelLengthAndTotalParts(t *testing.T) {
	want := []int{1, 6, 31, 156, 781, 3906, 19531, 97656, 488281, 2441406}
	for depth := MinDepth; depth <= MaxDepth; depth++ {
		assert.Equal(t, want[depth-1], TotalParts(depth), "depth %d", depth)
	}
	assert.Equal(t, 1, LevelLength(0))
	assert.Equal(t, 625, LevelLength(4))
}

func TestNewPartStoreShape(t *testing.T) {
	for depth := MinDepth; depth <= 7; depth++ {
		s, err := newPartStore(depth)
		require.NoError(t, err)
		require.Equal(t, depth, s.depth())
		assert.Equal(t, TotalParts(depth), s.partCount())
		for l := range depth {
			assert.Len(t, s.levels[l], LevelLength(l))
			assert.Len(t, s.matrices[l], LevelLength(l))
		}
	}
}

func TestNewPartStoreRejectsDepth(t *testing.T) {
	_, err := newPartStore(0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = newPartStore(MaxDepth + 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestPartStorePopulateAssignsSlots(t *testing.T) {
	s, err := newPartStore(3)
	require.NoError(t, err)
	require.NoError(t, s.populate(newPartFactory(rand.New(rand.NewPCG(1, 2))), DefaultConfig()))

	for l, level := range s.levels {
		for i, p := range level {
			assert.Equal(t, SlotRotation(SlotIndex(i)), p.LocalRotation, "level %d part %d", l, i)
			assert.NotZero(t, p.SpinVelocity)
		}
	}
}

func TestPartStoreRelease(t *testing.T) {
	s, err := newPartStore(3)
	require.NoError(t, err)

	require.NoError(t, s.release())
	assert.Equal(t, 0, s.depth())
	assert.Equal(t, 0, s.partCount())

	assert.ErrorIs(t, s.release(), ErrUseAfterRelease)
	assert.ErrorIs(t, s.populate(newPartFactory(rand.New(rand.NewPCG(1, 2))), DefaultConfig()), ErrUseAfterRelease)
}
