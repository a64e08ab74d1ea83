package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// NewFrustum extracts the frustum planes of a column-major view-projection matrix
// (Gribb/Hartmann). Depth is assumed to map to [0, 1] as in WebGPU clip space.
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	row0, row1, row2, row3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFromRow(row3.Add(row0))
	f.Planes[FrustumRight] = planeFromRow(row3.Sub(row0))
	f.Planes[FrustumBottom] = planeFromRow(row3.Add(row1))
	f.Planes[FrustumTop] = planeFromRow(row3.Sub(row1))
	f.Planes[FrustumNear] = planeFromRow(row2)
	f.Planes[FrustumFar] = planeFromRow(row3.Sub(row2))
	return f
}

// planeFromRow builds a normalized plane from a combined matrix row.
func planeFromRow(r mgl32.Vec4) Plane {
	p := Plane{Normal: mgl32.Vec3{r[0], r[1], r[2]}, Distance: r[3]}
	length := Length(p.Normal)
	if length > 0 {
		invLen := 1 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
	return p
}

// IntersectsBounds reports whether any part of b may lie inside the frustum.
// The test is conservative: boxes near a frustum corner can be reported as intersecting.
//
// Parameters:
//   - b: the box to test
//
// Returns:
//   - bool: false only when b lies entirely outside one of the planes
func (f Frustum) IntersectsBounds(b Bounds) bool {
	for _, p := range f.Planes {
		// projected radius of the box onto the plane normal
		r := b.Extents[0]*math32.Abs(p.Normal[0]) +
			b.Extents[1]*math32.Abs(p.Normal[1]) +
			b.Extents[2]*math32.Abs(p.Normal[2])
		if p.Normal.Dot(b.Center)+p.Distance < -r {
			return false
		}
	}
	return true
}
