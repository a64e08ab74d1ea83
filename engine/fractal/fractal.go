package fractal

import (
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fractal/common"
)

// lifecycleState tracks whether the fractal holds live allocations.
type lifecycleState int

const (
	stateInactive lifecycleState = iota
	stateActive
	stateReleased
)

// fractal is the implementation of the Fractal interface.
type fractal struct {
	mu *sync.Mutex

	state  lifecycleState
	closed bool
	config Config

	store     *partStore
	factory   *partFactory
	scheduler *scheduler
	allocator LevelAllocator

	rng       RandomSource
	seed      uint64
	workers   int
	batchSize int
	tracer    Tracer

	tick   uint64
	levels []LevelFrame
}

// Fractal is a five-way branching tree of parts animated by spin and sag.
//
// Activate allocates the tree for a configuration, Tick recomputes every world transform level by
// level and returns the per-level matrix buffers, Deactivate releases everything. A tick is atomic
// with respect to the lifecycle methods: they share one lock, so state is never torn down mid-tick.
type Fractal interface {
	// Activate validates cfg, allocates the tree and its matrix buffers, populates every part and
	// asks the LevelAllocator (if any) for GPU buffers. Nothing stays allocated when it fails.
	//
	// Parameters:
	//   - cfg: the configuration to activate
	//
	// Returns:
	//   - error: ErrInvalidConfiguration, ErrAlreadyActive or ErrAllocationFailure (wrapped)
	Activate(cfg Config) error

	// Deactivate releases the tree, its matrix buffers and the allocator's GPU buffers.
	//
	// Returns:
	//   - error: ErrUseAfterRelease if already released, ErrNotActive if never activated
	Deactivate() error

	// Reconfigure validates cfg, then deactivates and re-activates with it. There is no incremental resize.
	// An invalid cfg is rejected before the current tree is touched.
	//
	// Parameters:
	//   - cfg: the new configuration
	//
	// Returns:
	//   - error: ErrInvalidConfiguration, ErrUseAfterRelease, ErrNotActive or ErrAllocationFailure
	Reconfigure(cfg Config) error

	// Tick advances every part by dt and recomputes the tree under the given object transform.
	// The returned frame aliases the fractal's buffers until the next Tick or Deactivate.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - object: the world transform of the hosting object
	//
	// Returns:
	//   - Frame: the finished per-level matrix buffers
	//   - error: ErrUseAfterRelease or ErrNotActive
	Tick(dt float32, object common.Transform) (Frame, error)

	// Active reports whether the fractal currently holds an allocated tree.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// Config returns the configuration of the current (or last) activation.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config

	// Depth returns the number of allocated levels, or 0 when inactive.
	//
	// Returns:
	//   - int: the depth
	Depth() int

	// PartCount returns the number of allocated parts, or 0 when inactive.
	//
	// Returns:
	//   - int: the part count
	PartCount() int

	// Part returns a copy of the part at the given level and index.
	//
	// Parameters:
	//   - level: the level index
	//   - index: the part index within the level
	//
	// Returns:
	//   - Part: a copy of the part
	//   - error: ErrNotActive, ErrUseAfterRelease or ErrIndexOutOfRange
	Part(level, index int) (Part, error)

	// Close deactivates the fractal if it is active and stops its worker pool.
	// A closed fractal cannot be activated again. Closing twice is a no-op.
	//
	// Returns:
	//   - error: any error from releasing the active tree
	Close() error
}

var _ Fractal = &fractal{}

// NewFractal creates an inactive Fractal configured with the given options.
// The worker pool is created here so it can be reused across activations, and lives until Close.
//
// Parameters:
//   - options: functional options to configure the fractal
//
// Returns:
//   - Fractal: the new, inactive fractal
func NewFractal(options ...FractalBuilderOption) Fractal {
	f := &fractal{
		mu:        &sync.Mutex{},
		state:     stateInactive,
		config:    DefaultConfig(),
		workers:   max(runtime.NumCPU()-1, 1),
		batchSize: defaultBatchSize,
		seed:      uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(f.seed, f.seed^0x9e3779b97f4a7c15))
	}
	f.factory = newPartFactory(f.rng)
	f.scheduler = newScheduler(f.workers, f.batchSize, f.tracer)
	return f
}

func (f *fractal) Activate(cfg Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrUseAfterRelease
	}
	if f.state == stateActive {
		return ErrAlreadyActive
	}
	return f.activate(cfg)
}

func (f *fractal) Deactivate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deactivate()
}

func (f *fractal) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deactivate(); err != nil {
		return err
	}
	return f.activate(cfg)
}

func (f *fractal) Tick(dt float32, object common.Transform) (Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkActive(); err != nil {
		return Frame{}, err
	}

	f.scheduler.run(f.store, dt, object, f.config.LevelScaleBase)
	f.tick++

	scale := object.Scale
	for l := range f.levels {
		f.levels[l] = LevelFrame{Level: l, Scale: scale, Matrices: f.store.matrices[l]}
		scale *= f.config.LevelScaleBase
	}
	return Frame{
		Tick:         f.tick,
		RootPosition: f.store.levels[0][0].WorldPosition,
		ObjectScale:  object.Scale,
		Levels:       f.levels,
	}, nil
}

func (f *fractal) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == stateActive
}

func (f *fractal) Config() Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config
}

func (f *fractal) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateActive {
		return 0
	}
	return f.store.depth()
}

func (f *fractal) PartCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateActive {
		return 0
	}
	return f.store.partCount()
}

func (f *fractal) Part(level, index int) (Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkActive(); err != nil {
		return Part{}, err
	}
	if level < 0 || level >= f.store.depth() || index < 0 || index >= len(f.store.levels[level]) {
		return Part{}, fmt.Errorf("%w: level %d index %d", ErrIndexOutOfRange, level, index)
	}
	return f.store.levels[level][index], nil
}

func (f *fractal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	if f.state == stateActive {
		if err := f.deactivate(); err != nil {
			return err
		}
	}
	retired := f.scheduler.stop()
	f.state = stateReleased
	f.closed = true

	log.Printf("[Fractal] closed, %d workers retired", retired)
	return nil
}

// checkActive maps the lifecycle state to the error an operation on live state should return.
func (f *fractal) checkActive() error {
	switch f.state {
	case stateReleased:
		return ErrUseAfterRelease
	case stateInactive:
		return ErrNotActive
	}
	return nil
}

// activate performs the all-or-nothing activation. The caller must hold f.mu.
func (f *fractal) activate(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := newPartStore(cfg.Depth)
	if err != nil {
		return err
	}
	if err := store.populate(f.factory, cfg); err != nil {
		return err
	}

	if f.allocator != nil {
		counts := make([]int, cfg.Depth)
		for l := range counts {
			counts[l] = LevelLength(l)
		}
		if err := f.allocator.AllocateLevels(counts); err != nil {
			_ = store.release()
			return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
		}
	}

	f.store = store
	f.config = cfg
	f.tick = 0
	f.levels = make([]LevelFrame, cfg.Depth)
	f.state = stateActive

	log.Printf("[Fractal] activated depth=%d parts=%d workers=%d", cfg.Depth, store.partCount(), f.scheduler.workers)
	return nil
}

// deactivate releases the store and the allocator's buffers. The caller must hold f.mu.
func (f *fractal) deactivate() error {
	if err := f.checkActive(); err != nil {
		return err
	}
	if err := f.store.release(); err != nil {
		return err
	}
	if f.allocator != nil {
		f.allocator.ReleaseLevels()
	}
	f.store = nil
	f.levels = nil
	f.state = stateReleased

	log.Printf("[Fractal] deactivated after %d ticks", f.tick)
	return nil
}
