package game_object

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/Carmen-Shannon/oxy-fractal/engine/fractal"
	"github.com/Carmen-Shannon/oxy-fractal/engine/publisher"
	"github.com/go-gl/mathgl/mgl32"
)

// StyleFunc produces the per-level render styles for a tree of the given depth.
type StyleFunc func(depth int) []publisher.LevelStyle

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	enabled atomic.Bool

	transform common.Transform
	// rotationSpeed is the object's own yaw speed in radians per second.
	rotationSpeed float32

	fractal   fractal.Fractal
	publisher publisher.Publisher
	styleFunc StyleFunc
	styles    []publisher.LevelStyle
}

// GameObject is a scene entity that hosts a Fractal. Its world transform places the fractal's root,
// and Update runs one tick followed by one publish so a tick never overlaps the previous publish.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is updated and published.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is updated and published.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Transform returns the object's current world transform.
	//
	// Returns:
	//   - common.Transform: the world transform
	Transform() common.Transform

	// SetPosition sets the object's world position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's world orientation.
	//
	// Parameters:
	//   - rot: a unit quaternion
	SetRotation(rot mgl32.Quat)

	// SetScale sets the object's uniform world scale.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s float32)

	// SetRotationSpeed sets how fast the object yaws around its up axis.
	//
	// Parameters:
	//   - degreesPerSecond: the yaw speed
	SetRotationSpeed(degreesPerSecond float32)

	// Fractal returns the hosted fractal.
	//
	// Returns:
	//   - fractal.Fractal: the fractal, or nil
	Fractal() fractal.Fractal

	// Publisher returns the publisher frames are handed to.
	//
	// Returns:
	//   - publisher.Publisher: the publisher, or nil
	Publisher() publisher.Publisher

	// Update advances the object's own rotation, ticks the fractal and publishes the frame.
	// Disabled objects and inactive fractals are skipped without error.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - fractal.Frame: the published frame (zero if skipped)
	//   - error: a tick or publish error
	Update(deltaTime float32) (fractal.Frame, error)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled at the identity transform.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:        &sync.Mutex{},
		transform: common.IdentityTransform(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Transform() common.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transform
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rot mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Rotation = rot.Normalize()
}

func (g *gameObject) SetScale(s float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Scale = s
}

func (g *gameObject) SetRotationSpeed(degreesPerSecond float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = mgl32.DegToRad(degreesPerSecond)
}

func (g *gameObject) Fractal() fractal.Fractal {
	return g.fractal
}

func (g *gameObject) Publisher() publisher.Publisher {
	return g.publisher
}

func (g *gameObject) Update(deltaTime float32) (fractal.Frame, error) {
	if !g.Enabled() || g.fractal == nil || !g.fractal.Active() {
		return fractal.Frame{}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rotationSpeed != 0 {
		g.transform.Rotation = g.transform.Rotation.Mul(common.RotateY(g.rotationSpeed * deltaTime)).Normalize()
	}

	frame, err := g.fractal.Tick(deltaTime, g.transform)
	if err != nil {
		return fractal.Frame{}, fmt.Errorf("object %d tick failed: %w", g.id, err)
	}
	if g.publisher == nil {
		return frame, nil
	}

	if len(g.styles) != len(frame.Levels) && g.styleFunc != nil {
		g.styles = g.styleFunc(len(frame.Levels))
	}
	if err := g.publisher.Publish(frame, g.styles); err != nil {
		return frame, fmt.Errorf("object %d publish failed: %w", g.id, err)
	}
	return frame, nil
}
