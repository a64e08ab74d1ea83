package publisher

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// DrawSubmitter performs the actual instanced draw of a level using its GPU matrix buffer.
// It is supplied by the renderer that owns the pipeline, mesh and material.
type DrawSubmitter func(call DrawCall, matrices *wgpu.Buffer) error

// wgpuPublisherBackendImpl mirrors matrix buffers into wgpu storage buffers.
type wgpuPublisherBackendImpl struct {
	mu *sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue
	submit DrawSubmitter

	// buffers holds one storage buffer per level, indexed by level.
	buffers []*wgpu.Buffer
}

var _ Backend = &wgpuPublisherBackendImpl{}

// NewWGPUBackend creates a Backend that stores each level's matrices in a wgpu storage buffer and
// hands draws to submit. device and queue are owned by the caller and must outlive the backend.
//
// Parameters:
//   - device: the wgpu device used to create buffers
//   - queue: the queue used for buffer writes
//   - submit: the draw submitter, may be nil to only mirror buffers
//
// Returns:
//   - Backend: the wgpu backend
func NewWGPUBackend(device *wgpu.Device, queue *wgpu.Queue, submit DrawSubmitter) Backend {
	if device == nil || queue == nil {
		panic("publisher: NewWGPUBackend requires a non-nil device and queue")
	}
	return &wgpuPublisherBackendImpl{
		mu:     &sync.Mutex{},
		device: device,
		queue:  queue,
		submit: submit,
	}
}

func (b *wgpuPublisherBackendImpl) CreateLevelBuffers(sizes []uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseBuffers()
	for level, size := range sizes {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            fmt.Sprintf("Fractal Level %d Matrices", level),
			Size:             size,
			Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			b.releaseBuffers()
			return fmt.Errorf("failed to create matrix buffer for level %d: %w", level, err)
		}
		b.buffers = append(b.buffers, buf)
	}
	return nil
}

func (b *wgpuPublisherBackendImpl) WriteLevel(w BufferWrite) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if w.Level < 0 || w.Level >= len(b.buffers) {
		return fmt.Errorf("%w: level %d", ErrNotAllocated, w.Level)
	}
	b.queue.WriteBuffer(b.buffers[w.Level], w.Offset, w.Data)
	return nil
}

func (b *wgpuPublisherBackendImpl) SubmitDraw(call DrawCall) error {
	b.mu.Lock()
	if call.Level < 0 || call.Level >= len(b.buffers) {
		b.mu.Unlock()
		return fmt.Errorf("%w: level %d", ErrNotAllocated, call.Level)
	}
	buf := b.buffers[call.Level]
	b.mu.Unlock()

	if b.submit == nil {
		return nil
	}
	return b.submit(call, buf)
}

func (b *wgpuPublisherBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseBuffers()
}

// releaseBuffers frees all level buffers. The caller must hold b.mu.
func (b *wgpuPublisherBackendImpl) releaseBuffers() {
	for _, buf := range b.buffers {
		if buf != nil {
			buf.Release()
		}
	}
	b.buffers = nil
}
