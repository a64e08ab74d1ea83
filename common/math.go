package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the canonical up axis (+Y) shared by every part of the engine.
var Up = mgl32.Vec3{0, 1, 0}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// RotateX returns the quaternion rotating by angle radians around +X.
func RotateX(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, mgl32.Vec3{1, 0, 0})
}

// RotateY returns the quaternion rotating by angle radians around +Y.
func RotateY(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, Up)
}

// RotateZ returns the quaternion rotating by angle radians around +Z.
func RotateZ(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
}

// Length returns the Euclidean length of v computed in float32.
//
// Parameters:
//   - v: the vector to measure
//
// Returns:
//   - float32: |v|
func Length(v mgl32.Vec3) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// PackAffine builds a 3x4 affine transform from a rotation, a uniform scale and a translation.
// The result is column-major: columns 0-2 hold the scaled rotation basis and column 3 the
// translation, matching the 48-byte per-instance layout consumed by instanced draws.
//
// Parameters:
//   - rot: unit quaternion describing the orientation
//   - scale: uniform scale applied to the rotation basis
//   - pos: translation in world space
//
// Returns:
//   - mgl32.Mat3x4: the packed transform
func PackAffine(rot mgl32.Quat, scale float32, pos mgl32.Vec3) mgl32.Mat3x4 {
	w, x, y, z := rot.W, rot.V[0], rot.V[1], rot.V[2]
	return mgl32.Mat3x4{
		(1 - 2*y*y - 2*z*z) * scale, (2*x*y + 2*w*z) * scale, (2*x*z - 2*w*y) * scale,
		(2*x*y - 2*w*z) * scale, (1 - 2*x*x - 2*z*z) * scale, (2*y*z + 2*w*x) * scale,
		(2*x*z + 2*w*y) * scale, (2*y*z - 2*w*x) * scale, (1 - 2*x*x - 2*y*y) * scale,
		pos[0], pos[1], pos[2],
	}
}

// Translation extracts the translation column of a packed 3x4 transform.
//
// Parameters:
//   - m: a transform produced by PackAffine
//
// Returns:
//   - mgl32.Vec3: the translation
func Translation(m mgl32.Mat3x4) mgl32.Vec3 {
	return mgl32.Vec3{m[9], m[10], m[11]}
}
