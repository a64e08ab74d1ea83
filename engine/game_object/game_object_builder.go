package game_object

import (
	"github.com/Carmen-Shannon/oxy-fractal/engine/fractal"
	"github.com/Carmen-Shannon/oxy-fractal/engine/publisher"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is updated and published.
//
// Parameters:
//   - enabled: true to update the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Position = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial uniform world scale of the GameObject.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(s float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Scale = s
	}
}

// WithRotation sets the initial world orientation of the GameObject.
//
// Parameters:
//   - rot: a unit quaternion
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rot mgl32.Quat) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Rotation = rot.Normalize()
	}
}

// WithRotationSpeed sets the object's own yaw speed.
//
// Parameters:
//   - degreesPerSecond: the yaw speed
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(degreesPerSecond float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = mgl32.DegToRad(degreesPerSecond)
	}
}

// WithFractal attaches the Fractal hosted by this object.
//
// Parameters:
//   - f: the fractal
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the fractal
func WithFractal(f fractal.Fractal) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.fractal = f
	}
}

// WithPublisher sets the Publisher that receives every frame, and the function that produces
// per-level styles whenever the fractal's depth changes.
//
// Parameters:
//   - p: the publisher
//   - styles: the style generator
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the publisher
func WithPublisher(p publisher.Publisher, styles StyleFunc) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.publisher = p
		obj.styleFunc = styles
	}
}
