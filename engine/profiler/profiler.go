// Package profiler reports update throughput: ticks and controller
// evaluations per second alongside heap statistics.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window of the profiler.
type Stats struct {
	// TicksPerSecond is the number of updates per second.
	TicksPerSecond float64
	// EvalsPerSecond is the number of controller invocations per second.
	EvalsPerSecond float64
	// EvalsPerTick is the mean number of controller invocations per update.
	EvalsPerTick float64
	// HeapMB is the live heap in megabytes.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in megabytes per second.
	AllocRateMB float64
	// NumGC is the cumulative garbage collection count.
	NumGC uint32
}

// Profiler tracks update rate, controller throughput and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	evalCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
	quiet          bool
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets the reporting interval. Defaults to 1 second.
//
// Parameters:
//   - d: the interval between reports
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithQuiet computes stats without logging them.
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithQuiet() ProfilerBuilderOption {
	return func(p *Profiler) {
		p.quiet = true
	}
}

// WithTimeSource replaces time.Now, for deterministic reporting windows.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithTimeSource(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per update with the number of controller
// invocations that update made. Logs statistics when the interval has elapsed.
//
// Parameters:
//   - evals: controller invocations in this update
//
// Returns:
//   - bool: true if a reporting window closed this tick
func (p *Profiler) Tick(evals int) bool {
	p.tickCount++
	p.evalCount += evals
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	secs := elapsed.Seconds()
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	p.last = Stats{
		TicksPerSecond: float64(p.tickCount) / secs,
		EvalsPerSecond: float64(p.evalCount) / secs,
		EvalsPerTick:   float64(p.evalCount) / float64(p.tickCount),
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:    float64(allocDelta) / 1024 / 1024 / secs,
		NumGC:          p.memStats.NumGC,
	}

	if !p.quiet {
		log.Printf("[Profiler] Ticks: %.2f/s | Controllers: %.0f/s (%.1f per tick) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
			p.last.TicksPerSecond, p.last.EvalsPerSecond, p.last.EvalsPerTick, p.last.HeapMB, p.last.AllocRateMB, p.last.NumGC)
	}

	p.tickCount = 0
	p.evalCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Stats returns the most recently closed reporting window.
func (p *Profiler) Stats() Stats {
	return p.last
}
