package fractal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixStride is the size in bytes of one packed 3x4 transform in a matrix buffer.
const MatrixStride = 12 * 4

// LevelLength returns the number of parts at the given tree level (Branching^level).
//
// Parameters:
//   - level: the zero-based level index
//
// Returns:
//   - int: the level's part count
func LevelLength(level int) int {
	n := 1
	for range level {
		n *= Branching
	}
	return n
}

// TotalParts returns the number of parts in a tree of the given depth: (5^depth - 1) / 4.
//
// Parameters:
//   - depth: the number of levels
//
// Returns:
//   - int: the total part count
func TotalParts(depth int) int {
	return (LevelLength(depth) - 1) / (Branching - 1)
}

// partStore owns the per-level part arrays and their matrix buffers.
// Both are allocated in one step by newPartStore and dropped in one step by release.
type partStore struct {
	levels   [][]Part
	matrices [][]mgl32.Mat3x4
	released bool
}

// newPartStore allocates a tree of the given depth. Each level is a single contiguous slice of
// parts with a matrix buffer of the same length.
//
// Parameters:
//   - depth: the number of levels, in [MinDepth, MaxDepth]
//
// Returns:
//   - *partStore: the allocated store
//   - error: an error wrapping ErrInvalidConfiguration if depth is out of range
func newPartStore(depth int) (*partStore, error) {
	if depth < MinDepth || depth > MaxDepth {
		return nil, fmt.Errorf("%w: depth %d outside [%d, %d]", ErrInvalidConfiguration, depth, MinDepth, MaxDepth)
	}
	s := &partStore{
		levels:   make([][]Part, depth),
		matrices: make([][]mgl32.Mat3x4, depth),
	}
	for l := range depth {
		n := LevelLength(l)
		s.levels[l] = make([]Part, n)
		s.matrices[l] = make([]mgl32.Mat3x4, n)
	}
	return s, nil
}

// populate writes a freshly created part into every slot of every level.
//
// Parameters:
//   - factory: the part factory
//   - cfg: the configuration handed to the factory
//
// Returns:
//   - error: ErrUseAfterRelease if the store was released
func (s *partStore) populate(factory *partFactory, cfg Config) error {
	if s.released {
		return ErrUseAfterRelease
	}
	for _, level := range s.levels {
		for i := range level {
			level[i] = factory.CreatePart(SlotIndex(i), cfg)
		}
	}
	return nil
}

// depth returns the number of allocated levels, or 0 once released.
func (s *partStore) depth() int {
	return len(s.levels)
}

// partCount returns the number of allocated parts, or 0 once released.
func (s *partStore) partCount() int {
	n := 0
	for _, level := range s.levels {
		n += len(level)
	}
	return n
}

// release drops every level array and matrix buffer.
//
// Returns:
//   - error: ErrUseAfterRelease if the store was already released
func (s *partStore) release() error {
	if s.released {
		return ErrUseAfterRelease
	}
	for l := range s.levels {
		s.levels[l] = nil
		s.matrices[l] = nil
	}
	s.levels = nil
	s.matrices = nil
	s.released = true
	return nil
}
