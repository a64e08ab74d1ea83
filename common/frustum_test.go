package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrustumIntersectsBounds(t *testing.T) {
	// Camera at the origin looking down -Z.
	f := NewFrustum(mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100))

	assert.True(t, f.IntersectsBounds(NewCubeBounds(mgl32.Vec3{0, 0, -10}, 2)))
	assert.False(t, f.IntersectsBounds(NewCubeBounds(mgl32.Vec3{0, 0, 10}, 2)))
	assert.False(t, f.IntersectsBounds(NewCubeBounds(mgl32.Vec3{100, 0, -10}, 2)))
	assert.False(t, f.IntersectsBounds(NewCubeBounds(mgl32.Vec3{0, 0, -500}, 2)))

	// A large box straddling the edge of the view still intersects.
	assert.True(t, f.IntersectsBounds(NewCubeBounds(mgl32.Vec3{8, 0, -10}, 8)))
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := NewFrustum(mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.5, 50))
	for i, p := range f.Planes {
		assert.InDelta(t, 1, Length(p.Normal), tol, "plane %d", i)
	}
}
