package fractal

import (
	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/go-gl/mathgl/mgl32"
)

// sagEpsilon is the sag-axis length below which a part counts as already vertical.
const sagEpsilon = 1e-6

// childOffset is the distance between a part and its parent, in units of the child's scale.
const childOffset = 1.5

// Tracer observes the propagation order. Implementations must be safe for concurrent use since
// a level's parts are processed by several workers at once.
type Tracer interface {
	// ParentRead is called before part data of parent index parentIndex in level level is read.
	ParentRead(level, parentIndex int)
	// NodeWritten is called after the part at index in level has its world transform written.
	NodeWritten(level, index int)
}

// updateRoot advances the root part and places it at the object's transform.
//
// Parameters:
//   - root: the level 0 part, updated in place
//   - dt: elapsed time in seconds
//   - object: the world transform of the hosting object
//
// Returns:
//   - mgl32.Mat3x4: the root's packed transform, scaled by the object's scale
func updateRoot(root *Part, dt float32, object common.Transform) mgl32.Mat3x4 {
	root.SpinAngle += root.SpinVelocity * dt
	root.WorldRotation = object.Rotation.Mul(root.LocalRotation.Mul(common.RotateY(root.SpinAngle)))
	root.WorldPosition = object.Position
	return common.PackAffine(root.WorldRotation, object.Scale, root.WorldPosition)
}

// propagatePart computes a child's world transform from its finalized parent.
//
// The child first advances its spin. Its un-sagged up axis is then compared to global up: the
// cross product gives the sag axis and its length the lean. A vertical child keeps the parent's
// rotation as its base; otherwise the base is tilted around the sag axis by MaxSagAngle scaled by
// the lean, so branches that already lean droop further.
//
// Parameters:
//   - parent: the finalized parent part
//   - part: the child part as stored
//   - dt: elapsed time in seconds
//   - scale: the uniform scale of the child's level
//
// Returns:
//   - Part: the updated child
//   - mgl32.Mat3x4: the child's packed transform
func propagatePart(parent, part Part, dt, scale float32) (Part, mgl32.Mat3x4) {
	part.SpinAngle += part.SpinVelocity * dt

	upAxis := parent.WorldRotation.Mul(part.LocalRotation).Rotate(common.Up)
	sagAxis := common.Up.Cross(upAxis)
	sagMagnitude := common.Length(sagAxis)

	baseRotation := parent.WorldRotation
	if sagMagnitude > sagEpsilon {
		sagAxis = sagAxis.Mul(1 / sagMagnitude)
		sagRotation := mgl32.QuatRotate(part.MaxSagAngle*sagMagnitude, sagAxis)
		baseRotation = sagRotation.Mul(parent.WorldRotation)
	}

	part.WorldRotation = baseRotation.Mul(part.LocalRotation.Mul(common.RotateY(part.SpinAngle)))
	part.WorldPosition = parent.WorldPosition.Add(part.WorldRotation.Rotate(mgl32.Vec3{0, childOffset * scale, 0}))

	return part, common.PackAffine(part.WorldRotation, scale, part.WorldPosition)
}

// updateLevelRange propagates parts[start:end] of one level from their parents.
// Ranges of the same level never overlap, so disjoint ranges may run concurrently.
//
// Parameters:
//   - level: the level index of parts, at least 1
//   - parents: the finalized parts of level-1 (read only)
//   - parts: the parts of level, updated in place
//   - matrices: the matrix buffer of level
//   - start, end: the half-open index range to process
//   - dt: elapsed time in seconds
//   - scale: the uniform scale of the level
//   - tracer: optional ordering observer, may be nil
func updateLevelRange(level int, parents, parts []Part, matrices []mgl32.Mat3x4, start, end int, dt, scale float32, tracer Tracer) {
	for i := start; i < end; i++ {
		p := ParentIndex(i)
		if tracer != nil {
			tracer.ParentRead(level-1, p)
		}
		parts[i], matrices[i] = propagatePart(parents[p], parts[i], dt, scale)
		if tracer != nil {
			tracer.NodeWritten(level, i)
		}
	}
}
