package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks tick rate, tick work time and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// work time recorded since the last report
	workTotal time.Duration
	workMax   time.Duration
}

// Stats is the summary produced each time the update interval elapses.
type Stats struct {
	TPS         float64
	AvgWork     time.Duration
	MaxWork     time.Duration
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
}

// NewProfiler creates a new Profiler.
// An interval of zero or less defaults to 1 second.
//
// Parameters:
//   - interval: how often statistics are reported
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		memStats:       runtime.MemStats{},
	}
}

// Tick should be called once per engine tick with the time spent doing that tick's work.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - work: the duration of the tick's work (simulation plus publish)
//
// Returns:
//   - Stats: the reported statistics, valid only when the bool is true
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(work time.Duration) (Stats, bool) {
	p.tickCount++
	p.workTotal += work
	p.workMax = max(p.workMax, work)

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	stats := Stats{
		TPS:         float64(p.tickCount) / elapsed.Seconds(),
		AvgWork:     p.workTotal / time.Duration(p.tickCount),
		MaxWork:     p.workMax,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	log.Printf("[Profiler] TPS: %.2f | Tick: avg %s, max %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (+%d)",
		stats.TPS, stats.AvgWork, stats.MaxWork, stats.HeapMB, stats.AllocRateMB, stats.GCCount, stats.GCCount-p.lastGCCount)

	p.tickCount = 0
	p.workTotal = 0
	p.workMax = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
