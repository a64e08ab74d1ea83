package fractal

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RandomSource supplies uniformly distributed values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type RandomSource interface {
	Float32() float32
}

// slotRotations maps a child's slot to its fixed orientation: slot 0 keeps pointing up, slots 1-4 turn
// the child toward +X, -X, +Z and -Z.
var slotRotations = [Branching]mgl32.Quat{
	mgl32.QuatIdent(),
	common.RotateZ(-0.5 * math.Pi),
	common.RotateZ(0.5 * math.Pi),
	common.RotateX(0.5 * math.Pi),
	common.RotateX(-0.5 * math.Pi),
}

// SlotRotation returns the fixed local rotation of the given sibling slot.
//
// Parameters:
//   - slot: the sibling slot in [0, Branching)
//
// Returns:
//   - mgl32.Quat: the slot's local rotation
func SlotRotation(slot int) mgl32.Quat {
	return slotRotations[slot]
}

// partFactory creates parts with randomized sag and spin parameters.
type partFactory struct {
	rng RandomSource
}

// newPartFactory creates a factory drawing from rng.
//
// Parameters:
//   - rng: the random source used for every randomized field
//
// Returns:
//   - *partFactory: the factory
func newPartFactory(rng RandomSource) *partFactory {
	return &partFactory{rng: rng}
}

// CreatePart builds a part for the given sibling slot. Every field is written, so the returned
// part never carries values from a previous activation.
//
// Parameters:
//   - slot: the sibling slot in [0, Branching); the root uses slot 0
//   - cfg: the configuration providing the sag and spin ranges
//
// Returns:
//   - Part: the new part with zero spin angle and identity world transform
func (f *partFactory) CreatePart(slot int, cfg Config) Part {
	sag := mgl32.DegToRad(f.rangeValue(cfg.SagAngleMin, cfg.SagAngleMax))

	direction := float32(1)
	if f.rng.Float32() < cfg.ReverseSpinChance {
		direction = -1
	}
	spin := direction * mgl32.DegToRad(f.rangeValue(cfg.SpinSpeedMin, cfg.SpinSpeedMax))

	return Part{
		LocalRotation: slotRotations[slot],
		MaxSagAngle:   sag,
		SpinVelocity:  spin,
		SpinAngle:     0,
		WorldRotation: mgl32.QuatIdent(),
		WorldPosition: mgl32.Vec3{},
	}
}

// rangeValue draws a value uniformly from [lo, hi].
func (f *partFactory) rangeValue(lo, hi float32) float32 {
	return lo + (hi-lo)*f.rng.Float32()
}
