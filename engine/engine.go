package engine

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-fractal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fractal/engine/profiler"
)

// engine implements the Engine interface.
// Coordinates the tick and quit goroutines.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickLimit      uint64 // 0 = run until Quit
	ticks          uint64
	tickCallback   func(deltaTime float32)

	objects map[uint64]game_object.GameObject
	lastErr error
}

// Engine is the main entry point for the engine.
// It runs a fixed-rate tick loop that updates every registered GameObject in ascending ID order;
// each object ticks its fractal and publishes the result before the next object (and the next tick) starts.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each engine tick after every object has been updated.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddObject registers an object to be updated every tick, keyed by its ID.
	//
	// Parameters:
	//   - obj: the object to register
	AddObject(obj game_object.GameObject)

	// RemoveObject unregisters the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID
	RemoveObject(id uint64)

	// Object retrieves the object registered with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Object(id uint64) game_object.GameObject

	// Ticks returns the number of ticks run so far.
	//
	// Returns:
	//   - uint64: the tick count
	Ticks() uint64

	// Err returns the error that stopped the engine, if any.
	//
	// Returns:
	//   - error: the object update error that triggered the shutdown, or nil
	Err() error

	// Run starts the engine loop and blocks until Quit is called, the tick limit is reached or an
	// object update fails.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		objects:         make(map[uint64]game_object.GameObject),
		running:         false,
		wg:              sync.WaitGroup{},
		profiler:        profiler.NewProfiler(time.Second),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	e.wg.Wait()

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Updates every object at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	// Recover from panics inside the tick goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if !e.tick(dt) {
				e.signalQuit()
				return
			}

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick(time.Since(now))
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick updates every enabled object in ascending ID order and reports whether the loop should continue.
func (e *engine) tick(dt float32) bool {
	e.mu.Lock()
	ids := make([]uint64, 0, len(e.objects))
	for id := range e.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	objects := make([]game_object.GameObject, len(ids))
	for i, id := range ids {
		objects[i] = e.objects[id]
	}
	callback := e.tickCallback
	e.mu.Unlock()

	for _, obj := range objects {
		if _, err := obj.Update(dt); err != nil {
			log.Printf("[Engine] stopping: %v", err)
			e.mu.Lock()
			e.lastErr = err
			e.mu.Unlock()
			return false
		}
	}

	if callback != nil {
		callback(dt)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.ticks++
	return e.tickLimit == 0 || e.ticks < e.tickLimit
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddObject(obj game_object.GameObject) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.objects[obj.ID()] = obj
}

func (e *engine) RemoveObject(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.objects, id)
}

func (e *engine) Object(id uint64) game_object.GameObject {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.objects[id]
}

func (e *engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

func (e *engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}
