package fractal

import (
	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LevelFrame is the finished matrix buffer of one level for one tick.
type LevelFrame struct {
	// Level is the zero-based level index.
	Level int
	// Scale is the uniform scale applied to every part of the level.
	Scale float32
	// Matrices holds one packed transform per part, in part index order.
	Matrices []mgl32.Mat3x4
}

// Size returns the byte size of the level's matrix buffer.
//
// Returns:
//   - uint64: len(Matrices) * MatrixStride
func (l LevelFrame) Size() uint64 {
	return uint64(len(l.Matrices)) * MatrixStride
}

// Bytes returns a byte view of the matrix buffer suitable for a GPU upload.
// The view shares memory with the buffer and must not be modified.
//
// Returns:
//   - []byte: the matrices as raw bytes
func (l LevelFrame) Bytes() []byte {
	return common.SliceToBytes(l.Matrices)
}

// Frame is the read-only result of one tick, handed to the buffer publisher.
// The matrix slices alias the fractal's buffers: they are valid until the next Tick or Deactivate
// and must not be mutated.
type Frame struct {
	// Tick is the number of ticks completed since activation, starting at 1.
	Tick uint64
	// RootPosition is the root part's world position for this tick.
	RootPosition mgl32.Vec3
	// ObjectScale is the hosting object's uniform scale for this tick.
	ObjectScale float32
	// Levels holds one entry per level, root first.
	Levels []LevelFrame
}

// LevelAllocator creates and releases the GPU-side counterparts of the matrix buffers.
// The fractal calls AllocateLevels during Activate and ReleaseLevels during Deactivate.
type LevelAllocator interface {
	// AllocateLevels creates one buffer per level sized for counts[level] matrices.
	// It must leave nothing allocated when it returns an error.
	AllocateLevels(counts []int) error
	// ReleaseLevels frees every buffer created by AllocateLevels.
	ReleaseLevels()
}
