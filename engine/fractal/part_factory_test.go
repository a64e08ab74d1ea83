package fractal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// sequenceSource replays a fixed list of values, wrapping around at the end.
type sequenceSource struct {
	values []float32
	next   int
}

func (s *sequenceSource) Float32() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestCreatePartDrawOrder(t *testing.T) {
	// sag draw, reverse-spin draw, spin draw
	rng := &sequenceSource{values: []float32{0.5, 0.9, 0.25}}
	f := newPartFactory(rng)
	cfg := DefaultConfig()

	p := f.CreatePart(0, cfg)

	assert.InDelta(t, mgl32.DegToRad(20), p.MaxSagAngle, 1e-6)
	assert.InDelta(t, mgl32.DegToRad(21.25), p.SpinVelocity, 1e-6)
	assert.Equal(t, 3, rng.next)
}

func TestCreatePartReverseSpin(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ReverseSpinChance = 1
	p := newPartFactory(&sequenceSource{values: []float32{0.99}}).CreatePart(1, cfg)
	assert.Less(t, p.SpinVelocity, float32(0))

	cfg.ReverseSpinChance = 0
	p = newPartFactory(&sequenceSource{values: []float32{0}}).CreatePart(1, cfg)
	assert.Greater(t, p.SpinVelocity, float32(0))
}

func TestCreatePartResetsState(t *testing.T) {
	f := newPartFactory(&sequenceSource{values: []float32{0.1, 0.5, 0.7}})
	cfg := DefaultConfig()

	for slot := range Branching {
		p := f.CreatePart(slot, cfg)
		assert.Equal(t, SlotRotation(slot), p.LocalRotation)
		assert.Equal(t, float32(0), p.SpinAngle)
		assert.Equal(t, mgl32.QuatIdent(), p.WorldRotation)
		assert.Equal(t, mgl32.Vec3{}, p.WorldPosition)

		assert.GreaterOrEqual(t, p.MaxSagAngle, mgl32.DegToRad(cfg.SagAngleMin))
		assert.LessOrEqual(t, p.MaxSagAngle, mgl32.DegToRad(cfg.SagAngleMax))
		speed := p.SpinVelocity
		if speed < 0 {
			speed = -speed
		}
		assert.GreaterOrEqual(t, speed, mgl32.DegToRad(cfg.SpinSpeedMin)-1e-6)
		assert.LessOrEqual(t, speed, mgl32.DegToRad(cfg.SpinSpeedMax)+1e-6)
	}
}

func TestSlotRotationsPointAway(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	want := []mgl32.Vec3{
		{0, 1, 0},
		{1, 0, 0},
		{-1, 0, 0},
		{0, 0, 1},
		{0, 0, -1},
	}
	for slot, dir := range want {
		got := SlotRotation(slot).Rotate(up)
		for i := range 3 {
			assert.InDelta(t, dir[i], got[i], 1e-6, "slot %d component %d", slot, i)
		}
	}
}

func TestParentAndSlotIndex(t *testing.T) {
	assert.Equal(t, 0, ParentIndex(4))
	assert.Equal(t, 1, ParentIndex(5))
	assert.Equal(t, 24, ParentIndex(124))
	assert.Equal(t, 0, SlotIndex(5))
	assert.Equal(t, 4, SlotIndex(124))
}
