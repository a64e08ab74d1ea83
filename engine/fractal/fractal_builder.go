package fractal

// FractalBuilderOption is a functional option for configuring a Fractal during construction.
type FractalBuilderOption func(*fractal)

// WithRandomSource replaces the random source used by the part factory.
// Tests use it to make part creation deterministic.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - FractalBuilderOption: functional option to set the random source
func WithRandomSource(rng RandomSource) FractalBuilderOption {
	return func(f *fractal) {
		f.rng = rng
	}
}

// WithSeed seeds the default PCG random source. Ignored when WithRandomSource is also given.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - FractalBuilderOption: functional option to set the seed
func WithSeed(seed uint64) FractalBuilderOption {
	return func(f *fractal) {
		f.seed = seed
	}
}

// WithWorkers sets the number of pool workers used for each level pass.
// 1 or less runs every level on the ticking goroutine.
//
// Parameters:
//   - workers: the worker count (default runtime.NumCPU()-1, minimum 1)
//
// Returns:
//   - FractalBuilderOption: functional option to set the worker count
func WithWorkers(workers int) FractalBuilderOption {
	return func(f *fractal) {
		f.workers = workers
	}
}

// WithBatchSize sets how many consecutive parts one worker task processes.
// Levels no larger than one batch are processed inline.
//
// Parameters:
//   - batchSize: parts per task (values <= 0 select the default)
//
// Returns:
//   - FractalBuilderOption: functional option to set the batch size
func WithBatchSize(batchSize int) FractalBuilderOption {
	return func(f *fractal) {
		f.batchSize = batchSize
	}
}

// WithLevelAllocator registers the allocator that mirrors matrix buffers on the GPU.
// Its buffers are created during Activate and released during Deactivate.
//
// Parameters:
//   - allocator: the level allocator, typically a publisher.Publisher
//
// Returns:
//   - FractalBuilderOption: functional option to set the allocator
func WithLevelAllocator(allocator LevelAllocator) FractalBuilderOption {
	return func(f *fractal) {
		f.allocator = allocator
	}
}

// WithTracer registers an observer of the propagation order.
//
// Parameters:
//   - tracer: the tracer, must be safe for concurrent use
//
// Returns:
//   - FractalBuilderOption: functional option to set the tracer
func WithTracer(tracer Tracer) FractalBuilderOption {
	return func(f *fractal) {
		f.tracer = tracer
	}
}
