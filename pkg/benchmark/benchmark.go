// Package benchmark measures the per-call execution time of small units of
// work. It primes every benchmark, discovers an inner iteration count large
// enough for the timer to be trustworthy, cancels fixed loop overhead against
// a no-op reference and reports the minimum and 80th percentile per-iteration
// times.
package benchmark

// Benchmark is a named unit of work.
//
// Setup and Cleanup run once around every timed region and are not counted.
// Go is the measured operation; it must be safe to call any number of times
// between one Setup/Cleanup pair without changing its own cost.
type Benchmark interface {
	Name() string
	Setup() error
	Go()
	Cleanup() error
}

// Base provides no-op Setup and Cleanup methods for embedding.
type Base struct{}

func (Base) Setup() error   { return nil }
func (Base) Cleanup() error { return nil }

type funcBenchmark struct {
	Base
	name string
	fn   func()
}

func (f *funcBenchmark) Name() string { return f.name }

//go:noinline
func (f *funcBenchmark) Go() { f.fn() }

// Func returns a Benchmark that calls fn on every iteration.
func Func(name string, fn func()) Benchmark {
	return &funcBenchmark{name: name, fn: fn}
}

// noop is the reference benchmark used to measure loop and dispatch overhead.
type noop struct{}

func (noop) Name() string { return "(null)" }

//go:noinline
func (noop) Setup() error { return nil }

//go:noinline
func (noop) Go() {}

//go:noinline
func (noop) Cleanup() error { return nil }
