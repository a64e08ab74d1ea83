// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the world placement of a hosted object: where it sits, how it is oriented and how large it is.
type Transform struct {
	// Position is the world-space translation.
	Position mgl32.Vec3
	// Rotation is the world-space orientation as a unit quaternion.
	Rotation mgl32.Quat
	// Scale is the uniform world-space scale.
	Scale float32
}

// IdentityTransform returns a transform at the origin with no rotation and unit scale.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    1,
	}
}

// Color is a linear RGBA color.
type Color [4]float32

// Lerp interpolates between c and other, clamping t to [0, 1].
//
// Parameters:
//   - other: the color reached at t = 1
//   - t: the interpolation factor
//
// Returns:
//   - Color: the interpolated color
func (c Color) Lerp(other Color, t float32) Color {
	t = math32.Max(0, math32.Min(1, t))
	var out Color
	for i := range c {
		out[i] = c[i] + (other[i]-c[i])*t
	}
	return out
}

// Bounds is an axis-aligned box given by its center and half-extents.
type Bounds struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// NewCubeBounds returns a cube of the given edge length centered on center.
//
// Parameters:
//   - center: the cube center
//   - size: the edge length of the cube
//
// Returns:
//   - Bounds: the cube bounds
func NewCubeBounds(center mgl32.Vec3, size float32) Bounds {
	h := size * 0.5
	return Bounds{Center: center, Extents: mgl32.Vec3{h, h, h}}
}

// Contains reports whether p lies inside or on the boundary of b.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is inside the box
func (b Bounds) Contains(p mgl32.Vec3) bool {
	for i := range 3 {
		if math32.Abs(p[i]-b.Center[i]) > b.Extents[i] {
			return false
		}
	}
	return true
}
