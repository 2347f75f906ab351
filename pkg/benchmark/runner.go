package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
)

const (
	// DefaultOuterIterations is the number of samples collected per benchmark.
	DefaultOuterIterations = 16
	// DefaultMinimumTimeMs is the shortest timed region, in milliseconds,
	// trusted during iteration-count discovery.
	DefaultMinimumTimeMs = 3.0
	// DefaultMaxIterations caps the doubling of the inner iteration count.
	DefaultMaxIterations = 1 << 30
)

var (
	ErrInvalidOption = errors.New("invalid runner option")
	ErrNilBenchmark  = errors.New("nil benchmark")
)

// Option configures a Runner.
type Option func(*Runner) error

// WithOuterIterations sets the number of samples collected per benchmark.
func WithOuterIterations(n int) Option {
	return func(r *Runner) error {
		if n <= 0 {
			return fmt.Errorf("%w: outer iterations must be positive, got %d", ErrInvalidOption, n)
		}
		r.outerIterations = n
		return nil
	}
}

// WithMinimumTime sets the minimum timed region, in milliseconds, required
// before an iteration count is accepted.
func WithMinimumTime(ms float64) Option {
	return func(r *Runner) error {
		if !(ms > 0) {
			return fmt.Errorf("%w: minimum time must be positive, got %v", ErrInvalidOption, ms)
		}
		r.minimumTimeMs = ms
		return nil
	}
}

// WithMaxIterations caps the inner iteration count. A benchmark still below
// the minimum time at the cap is measured at the cap.
func WithMaxIterations(n int) Option {
	return func(r *Runner) error {
		if n <= 0 {
			return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidOption, n)
		}
		r.maxIterations = n
		return nil
	}
}

// WithTimer replaces the default Stopwatch.
func WithTimer(t Timer) Option {
	return func(r *Runner) error {
		if t == nil {
			return fmt.Errorf("%w: timer is nil", ErrInvalidOption)
		}
		r.timer = t
		return nil
	}
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) error {
		if o != nil {
			r.observer = o
		}
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) error {
		if l != nil {
			r.logger = l
		}
		return nil
	}
}

// Runner measures a fixed list of benchmarks. It is not safe for concurrent
// use.
type Runner struct {
	benchmarks      []Benchmark
	outerIterations int
	minimumTimeMs   float64
	maxIterations   int
	timer           Timer
	observer        Observer
	logger          *slog.Logger

	// reference is timed after every benchmark to cancel loop overhead.
	reference Benchmark
	// collect runs before every timed region.
	collect func()
}

// NewRunner returns a Runner for benchmarks.
func NewRunner(benchmarks []Benchmark, opts ...Option) (*Runner, error) {
	for i, b := range benchmarks {
		if b == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilBenchmark, i)
		}
	}

	r := &Runner{
		benchmarks:      benchmarks,
		outerIterations: DefaultOuterIterations,
		minimumTimeMs:   DefaultMinimumTimeMs,
		maxIterations:   DefaultMaxIterations,
		timer:           NewStopwatch(),
		observer:        nopObserver{},
		logger:          slog.Default(),
		reference:       noop{},
		collect:         runtime.GC,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run measures every benchmark and returns one Result per benchmark in input
// order. Samples are interleaved: each outer repetition visits every
// benchmark once, so slow drifts in machine state are shared evenly.
//
// A Setup or Cleanup error aborts the run. ctx is checked between samples;
// an individual Go call is never interrupted.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.benchmarks))
	if len(r.benchmarks) == 0 {
		return results, nil
	}

	iterations := make([]int, len(r.benchmarks))
	times := make([][]float64, len(r.benchmarks))
	for i := range times {
		times[i] = make([]float64, r.outerIterations)
	}

	for _, b := range r.benchmarks {
		if err := prime(b); err != nil {
			return nil, err
		}
	}

	for i, b := range r.benchmarks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, sample, err := r.discover(b)
		if err != nil {
			return nil, err
		}
		iterations[i] = n
		times[i][0] = sample
		r.observer.Sampled(b.Name(), n, sample)
	}

	for rep := 1; rep < r.outerIterations; rep++ {
		for i, b := range r.benchmarks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sample, _, err := r.captureTime(b, iterations[i])
			if err != nil {
				return nil, err
			}
			times[i][rep] = sample
			r.observer.Sampled(b.Name(), iterations[i], sample)
		}
	}

	for i, b := range r.benchmarks {
		sort.Float64s(times[i])
		results = append(results, Result{
			Name:        b.Name(),
			MinimumTime: times[i][0],
			P80:         Percentile(times[i], 80),
		})
	}
	r.observer.Finished(results)
	return results, nil
}

// discover doubles the iteration count, starting at one, until the raw time
// of a sample reaches the minimum time. It returns the count and the first
// accepted sample.
func (r *Runner) discover(b Benchmark) (int, float64, error) {
	n := 1
	for {
		sample, raw, err := r.captureTime(b, n)
		if err != nil {
			return 0, 0, err
		}
		if raw >= r.minimumTimeMs {
			r.logger.Debug("iteration count discovered",
				"benchmark", b.Name(), "iterations", n, "raw_ms", raw)
			return n, sample, nil
		}
		if n >= r.maxIterations {
			r.logger.Warn("iteration cap reached below minimum time",
				"benchmark", b.Name(), "iterations", n, "raw_ms", raw, "minimum_ms", r.minimumTimeMs)
			return n, sample, nil
		}
		r.observer.TooFast(b.Name(), n)
		n = nextIterations(n, r.maxIterations)
	}
}

// nextIterations doubles n without exceeding max or overflowing.
func nextIterations(n, max int) int {
	if n > max/2 {
		return max
	}
	return n * 2
}

// captureTime runs one Setup/Cleanup bracketed sample of n iterations. It
// returns the overhead-cancelled time per iteration and the raw elapsed time
// of the benchmark's n calls.
func (r *Runner) captureTime(b Benchmark, n int) (sample, raw float64, err error) {
	if err := b.Setup(); err != nil {
		return 0, 0, fmt.Errorf("setup %q: %w", b.Name(), err)
	}
	raw = r.measureRuntime(b, n)
	overhead := r.measureRuntime(r.reference, n)
	if err := b.Cleanup(); err != nil {
		return 0, 0, fmt.Errorf("cleanup %q: %w", b.Name(), err)
	}
	return (raw - overhead) / float64(n), raw, nil
}

// measureRuntime times n calls of b.Go after a forced collection.
func (r *Runner) measureRuntime(b Benchmark, n int) float64 {
	r.collect()
	r.timer.Restart()
	for i := 0; i < n; i++ {
		b.Go()
	}
	r.timer.Stop()
	return r.timer.ElapsedMilliseconds()
}

// prime pays one-time costs such as lazy initialisation outside any timed
// region.
func prime(b Benchmark) error {
	if err := b.Setup(); err != nil {
		return fmt.Errorf("prime %q: setup: %w", b.Name(), err)
	}
	b.Go()
	if err := b.Cleanup(); err != nil {
		return fmt.Errorf("prime %q: cleanup: %w", b.Name(), err)
	}
	return nil
}
