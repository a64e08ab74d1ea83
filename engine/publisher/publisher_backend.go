package publisher

import (
	"github.com/Carmen-Shannon/oxy-fractal/common"
)

// DrawCall is one instanced draw request for a level's matrix buffer.
// The draw itself is performed by the rendering collaborator behind the Backend.
type DrawCall struct {
	// Level is the zero-based level index whose buffer the draw reads.
	Level int
	// Instances is the number of matrices in the level's buffer.
	Instances int
	// Bounds is the loose bounding volume shared by every level of the fractal.
	Bounds common.Bounds
	// ColorA and ColorB are the level's color pair.
	ColorA, ColorB common.Color
	// Sequence is the level's random seed vector for rendering variation.
	Sequence [4]float32
	// Leaf is true for the deepest level.
	Leaf bool
}

// Backend owns the GPU-resident matrix buffers and forwards draw requests.
type Backend interface {
	// CreateLevelBuffers creates one buffer per entry of sizes (in bytes).
	// On error, every buffer created so far must be released.
	//
	// Parameters:
	//   - sizes: the byte size of each level's buffer
	//
	// Returns:
	//   - error: an error if any buffer could not be created
	CreateLevelBuffers(sizes []uint64) error

	// WriteLevel copies w.Data into the buffer of level w.Level at w.Offset.
	//
	// Parameters:
	//   - w: the buffer write
	//
	// Returns:
	//   - error: ErrNotAllocated if the level has no buffer
	WriteLevel(w BufferWrite) error

	// SubmitDraw issues one instanced draw of the level named by call.
	//
	// Parameters:
	//   - call: the draw request
	//
	// Returns:
	//   - error: an error reported by the rendering collaborator
	SubmitDraw(call DrawCall) error

	// Release frees every buffer created by CreateLevelBuffers.
	Release()
}
