package fractal

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Part is a single node of the fractal tree.
//
// Its fields fall into three groups. The shape fields are written once by the part factory and
// never change. SpinAngle is the only state carried from one tick to the next. The world fields
// are a cache rebuilt from the parent on every tick and are never trusted across ticks.
type Part struct {
	// LocalRotation is the fixed orientation offset chosen by the part's slot among its siblings.
	LocalRotation mgl32.Quat
	// MaxSagAngle is the sag angle in radians reached when the part leans fully horizontal.
	MaxSagAngle float32
	// SpinVelocity is the signed spin speed in radians per second.
	SpinVelocity float32

	// SpinAngle is the accumulated spin in radians. It is not wrapped.
	SpinAngle float32

	// WorldRotation is the part's orientation for the current tick.
	WorldRotation mgl32.Quat
	// WorldPosition is the part's position for the current tick.
	WorldPosition mgl32.Vec3
}

// ParentIndex returns the index in level L-1 of the parent of part i in level L.
func ParentIndex(i int) int {
	return i / Branching
}

// SlotIndex returns the position of part i among its siblings.
func SlotIndex(i int) int {
	return i % Branching
}
