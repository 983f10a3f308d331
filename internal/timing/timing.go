// Package timing provides phase timers and the offline benchmark runner
// behind the --tuning flag.
package timing

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// PerformanceTimer measures named phases within one run.
type PerformanceTimer struct {
	start       time.Time
	checkpoints map[string]time.Time
}

// NewPerformanceTimer creates a timer anchored at now.
func NewPerformanceTimer() *PerformanceTimer {
	return &PerformanceTimer{
		start:       time.Now(),
		checkpoints: make(map[string]time.Time),
	}
}

// StartPhase begins timing the named phase.
func (t *PerformanceTimer) StartPhase(phase string) {
	t.checkpoints[phase] = time.Now()
}

// EndPhase ends the named phase, logs it, and returns its duration.
func (t *PerformanceTimer) EndPhase(phase string) (time.Duration, error) {
	started, ok := t.checkpoints[phase]
	if !ok {
		return 0, fmt.Errorf("phase %q was not started", phase)
	}
	d := time.Since(started)
	logrus.WithFields(logrus.Fields{"phase": phase, "elapsed": d}).Info("phase complete")
	return d, nil
}

// TotalElapsed returns the time since the timer was created.
func (t *PerformanceTimer) TotalElapsed() time.Duration {
	return time.Since(t.start)
}

// Reset re-anchors the timer and forgets all checkpoints.
func (t *PerformanceTimer) Reset() {
	t.start = time.Now()
	t.checkpoints = make(map[string]time.Time)
}

// BenchmarkResult summarizes repeated runs of one benchmark.
type BenchmarkResult struct {
	Name       string        `json:"name"`
	Iterations int           `json:"iterations"`
	MinTime    time.Duration `json:"min_time"`
	MaxTime    time.Duration `json:"max_time"`
	AvgTime    time.Duration `json:"avg_time"`
	MedianTime time.Duration `json:"median_time"`
	TotalTime  time.Duration `json:"total_time"`
}

// BenchmarkRunner times a function over repeated iterations with a
// short warm-up.
type BenchmarkRunner struct {
	results map[string]*BenchmarkResult
}

// NewBenchmarkRunner creates an empty runner.
func NewBenchmarkRunner() *BenchmarkRunner {
	return &BenchmarkRunner{results: make(map[string]*BenchmarkResult)}
}

// Run benchmarks fn over the given number of iterations and records the
// result under name.
func (r *BenchmarkRunner) Run(name string, iterations int, fn func()) *BenchmarkResult {
	if iterations < 1 {
		iterations = 1
	}

	for i := 0; i < iterations/10; i++ {
		fn()
	}

	times := make([]time.Duration, 0, iterations)
	var total time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		fn()
		d := time.Since(start)
		times = append(times, d)
		total += d
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	result := &BenchmarkResult{
		Name:       name,
		Iterations: iterations,
		MinTime:    times[0],
		MaxTime:    times[iterations-1],
		AvgTime:    total / time.Duration(iterations),
		MedianTime: times[iterations/2],
		TotalTime:  total,
	}
	r.results[name] = result
	return result
}

// Result returns a previously recorded benchmark, if any.
func (r *BenchmarkRunner) Result(name string) (*BenchmarkResult, bool) {
	res, ok := r.results[name]
	return res, ok
}

// Log writes every recorded result through the structured logger.
func (r *BenchmarkRunner) Log() {
	names := make([]string, 0, len(r.results))
	for name := range r.results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res := r.results[name]
		logrus.WithFields(logrus.Fields{
			"benchmark":  res.Name,
			"iterations": res.Iterations,
			"avg":        res.AvgTime,
			"median":     res.MedianTime,
			"min":        res.MinTime,
			"max":        res.MaxTime,
		}).Info("benchmark result")
	}
}
