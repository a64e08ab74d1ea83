package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fractal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fractal/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfilerInterval sets how often the profiler logs its statistics.
//
// Parameters:
//   - interval: the reporting interval (defaults to 1 second if <= 0)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTickLimit stops the engine after the given number of ticks.
// Pass 0 to run until Quit (default).
//
// Parameters:
//   - ticks: the number of ticks to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickLimit(ticks uint64) EngineBuilderOption {
	return func(e *engine) {
		e.tickLimit = ticks
	}
}

// WithObject registers an object during engine construction.
//
// Parameters:
//   - obj: the object to update every tick
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithObject(obj game_object.GameObject) EngineBuilderOption {
	return func(e *engine) {
		e.objects[obj.ID()] = obj
	}
}
