package publisher

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/Carmen-Shannon/oxy-fractal/engine/fractal"
	"github.com/go-gl/mathgl/mgl32"
)

// defaultBoundsFactor is the cube edge, in units of the object scale, of the shared draw bounds.
const defaultBoundsFactor = 3

// publisher is the implementation of the Publisher interface.
type publisher struct {
	mu *sync.Mutex

	backend      Backend
	allocated    bool
	levelCounts  []int
	boundsFactor float32

	// frustum, when set, culls every draw of a frame whose bounds lie outside it.
	frustum *common.Frustum

	// published counts frames pushed since the last allocation, culled those whose draws were skipped.
	published uint64
	culled    uint64
}

// Publisher hands finished fractal frames to the GPU: one buffer write and one instanced draw per level.
// It implements fractal.LevelAllocator so the fractal can create and release its GPU buffers as part
// of activation.
type Publisher interface {
	fractal.LevelAllocator

	// Publish mirrors every level of frame into its GPU buffer and submits one draw per level.
	// styles must hold an entry for every level; their contents are not validated. Nothing is
	// written unless every level matches its allocation, and draws are skipped when view culling
	// rejects the frame's bounds.
	//
	// Parameters:
	//   - frame: the finished tick
	//   - styles: per-level render metadata, root first
	//
	// Returns:
	//   - error: ErrNotAllocated, ErrLevelMismatch, ErrMissingLevelStyle or a backend error
	Publish(frame fractal.Frame, styles []LevelStyle) error

	// Allocated reports whether level buffers currently exist.
	//
	// Returns:
	//   - bool: true if AllocateLevels succeeded and ReleaseLevels has not been called since
	Allocated() bool

	// LevelCounts returns the matrix counts of the allocated levels.
	//
	// Returns:
	//   - []int: a copy of the per-level counts, or nil if not allocated
	LevelCounts() []int

	// SetViewProjection enables view culling: frames whose bounds lie outside the frustum of viewProj
	// still have their buffers written, but no draws are submitted.
	//
	// Parameters:
	//   - viewProj: the camera's column-major view-projection matrix
	SetViewProjection(viewProj mgl32.Mat4)

	// ClearViewProjection disables view culling.
	ClearViewProjection()

	// Culled returns the number of frames whose draws were culled since the last allocation.
	//
	// Returns:
	//   - uint64: the culled frame count
	Culled() uint64

	// Bounds returns the draw bounds used for a frame.
	//
	// Parameters:
	//   - frame: the frame to bound
	//
	// Returns:
	//   - common.Bounds: a cube centered on the root with edge boundsFactor * object scale
	Bounds(frame fractal.Frame) common.Bounds
}

var _ Publisher = &publisher{}

// NewPublisher creates a Publisher over the given backend. backend is required and NewPublisher
// panics if it is nil.
//
// Parameters:
//   - backend: the GPU backend
//   - options: functional options to configure the publisher
//
// Returns:
//   - Publisher: the new publisher
func NewPublisher(backend Backend, options ...PublisherBuilderOption) Publisher {
	if backend == nil {
		panic("publisher: NewPublisher requires a non-nil Backend")
	}
	p := &publisher{
		mu:           &sync.Mutex{},
		backend:      backend,
		boundsFactor: defaultBoundsFactor,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *publisher) AllocateLevels(counts []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.allocated {
		p.backend.Release()
		p.allocated = false
	}

	sizes := make([]uint64, len(counts))
	var total uint64
	for l, n := range counts {
		sizes[l] = uint64(n) * fractal.MatrixStride
		total += sizes[l]
	}
	if err := p.backend.CreateLevelBuffers(sizes); err != nil {
		return err
	}

	p.levelCounts = append(p.levelCounts[:0], counts...)
	p.allocated = true
	p.published = 0
	p.culled = 0
	log.Printf("[Publisher] allocated %d level buffers (%d bytes)", len(counts), total)
	return nil
}

func (p *publisher) ReleaseLevels() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.allocated {
		return
	}
	p.backend.Release()
	p.allocated = false
	p.levelCounts = p.levelCounts[:0]
	log.Printf("[Publisher] released level buffers after %d frames (%d culled)", p.published, p.culled)
}

func (p *publisher) Publish(frame fractal.Frame, styles []LevelStyle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.allocated {
		return ErrNotAllocated
	}
	if len(frame.Levels) != len(p.levelCounts) {
		return fmt.Errorf("%w: frame has %d levels, %d allocated", ErrLevelMismatch, len(frame.Levels), len(p.levelCounts))
	}
	if len(styles) < len(frame.Levels) {
		return fmt.Errorf("%w: %d styles for %d levels", ErrMissingLevelStyle, len(styles), len(frame.Levels))
	}

	for i, level := range frame.Levels {
		if len(level.Matrices) != p.levelCounts[i] {
			return fmt.Errorf("%w: level %d has %d matrices, %d allocated", ErrLevelMismatch, i, len(level.Matrices), p.levelCounts[i])
		}
	}

	for _, level := range frame.Levels {
		if err := p.backend.WriteLevel(BufferWrite{Level: level.Level, Data: level.Bytes()}); err != nil {
			return fmt.Errorf("failed to write level %d: %w", level.Level, err)
		}
	}
	p.published++

	bounds := p.bounds(frame)
	if p.frustum != nil && !p.frustum.IntersectsBounds(bounds) {
		p.culled++
		return nil
	}

	leaf := len(frame.Levels) - 1
	for i, level := range frame.Levels {
		style := styles[i]
		call := DrawCall{
			Level:     level.Level,
			Instances: len(level.Matrices),
			Bounds:    bounds,
			ColorA:    style.ColorA,
			ColorB:    style.ColorB,
			Sequence:  style.Sequence,
			Leaf:      i == leaf,
		}
		if err := p.backend.SubmitDraw(call); err != nil {
			return fmt.Errorf("failed to submit draw for level %d: %w", level.Level, err)
		}
	}
	return nil
}

func (p *publisher) SetViewProjection(viewProj mgl32.Mat4) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := common.NewFrustum(viewProj)
	p.frustum = &f
}

func (p *publisher) ClearViewProjection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frustum = nil
}

func (p *publisher) Culled() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.culled
}

func (p *publisher) Allocated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}

func (p *publisher) LevelCounts() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.allocated {
		return nil
	}
	return append([]int(nil), p.levelCounts...)
}

func (p *publisher) Bounds(frame fractal.Frame) common.Bounds {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bounds(frame)
}

// bounds computes the loose draw bounds. The caller must hold p.mu.
func (p *publisher) bounds(frame fractal.Frame) common.Bounds {
	return common.NewCubeBounds(frame.RootPosition, p.boundsFactor*frame.ObjectScale)
}
