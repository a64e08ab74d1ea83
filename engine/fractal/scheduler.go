package fractal

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fractal/common"
)

// defaultBatchSize is the number of consecutive parts handed to one worker task.
const defaultBatchSize = 125

// scheduler drives one tick: the root first, then every deeper level as a fork-join pass.
// A level's pass is split into batches submitted to a worker pool and joined with a WaitGroup
// before the next level starts, because every child reads its parent's transform from the same tick.
type scheduler struct {
	// pool is nil when the scheduler runs single-threaded.
	pool      worker.DynamicWorkerPool
	workers   int
	batchSize int
	tracer    Tracer

	// wg is the per-level barrier. pool.Wait blocks until workers idle out, which does not fit a per-frame join.
	wg     sync.WaitGroup
	taskID int
}

// newScheduler creates a scheduler with the given parallelism.
// A worker count of 1 or less selects the single-threaded path and creates no pool.
//
// Parameters:
//   - workers: the number of pool workers
//   - batchSize: parts per task; 0 selects the default
//   - tracer: optional ordering observer, may be nil
//
// Returns:
//   - *scheduler: the scheduler
func newScheduler(workers, batchSize int, tracer Tracer) *scheduler {
	s := &scheduler{
		workers:   max(workers, 1),
		batchSize: common.Coalesce(max(batchSize, 0), defaultBatchSize),
		tracer:    tracer,
	}
	if s.workers > 1 {
		// Queue sized so a full level of the deepest tree can be queued without blocking the submitter for long.
		s.pool = worker.NewDynamicWorkerPool(s.workers, 1024, 1*time.Second)
	}
	return s
}

// run performs one full tick over the store: root update, then levels 1..depth-1 in order, each
// fully joined before the next begins.
//
// Parameters:
//   - store: the part store to update
//   - dt: elapsed time in seconds
//   - object: the hosting object's world transform
//   - scaleBase: per-level scale multiplier
func (s *scheduler) run(store *partStore, dt float32, object common.Transform, scaleBase float32) {
	store.matrices[0][0] = updateRoot(&store.levels[0][0], dt, object)
	if s.tracer != nil {
		s.tracer.NodeWritten(0, 0)
	}

	scale := object.Scale
	for l := 1; l < store.depth(); l++ {
		scale *= scaleBase
		s.runLevel(l, store, scale, dt)
	}
}

// runLevel propagates one level and returns only after every part of it has been written.
func (s *scheduler) runLevel(level int, store *partStore, scale, dt float32) {
	parents, parts, matrices := store.levels[level-1], store.levels[level], store.matrices[level]
	n := len(parts)
	if s.pool == nil || n <= s.batchSize {
		updateLevelRange(level, parents, parts, matrices, 0, n, dt, scale, s.tracer)
		return
	}

	for start := 0; start < n; start += s.batchSize {
		end := min(start+s.batchSize, n)
		s.wg.Add(1)
		s.taskID++
		s.pool.SubmitTask(worker.Task{
			ID: s.taskID,
			Do: func() (any, error) {
				defer s.wg.Done()
				updateLevelRange(level, parents, parts, matrices, start, end, dt, scale, s.tracer)
				return nil, nil
			},
		})
	}
	s.wg.Wait()
}

// stop retires every pool worker and returns once each has taken its retiring task.
// pool.Stop sends worker IDs over one shared channel that any worker may consume, so it cannot
// guarantee every goroutine exits; a task that ends its goroutine with runtime.Goexit can.
// Each worker therefore takes exactly one retiring task. Safe to call more than once.
//
// Returns:
//   - int: the number of workers retired
func (s *scheduler) stop() int {
	if s.pool == nil {
		return 0
	}

	var retired sync.WaitGroup
	retired.Add(s.workers)
	for range s.workers {
		s.taskID++
		s.pool.SubmitTask(worker.Task{
			ID: s.taskID,
			Do: func() (any, error) {
				retired.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	retired.Wait()

	s.pool = nil
	return s.workers
}
