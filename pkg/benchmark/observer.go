package benchmark

import (
	"fmt"
	"io"
)

// Observer receives progress notifications from a Runner. Implementations
// are called synchronously between timed regions.
type Observer interface {
	// TooFast reports a discarded sample: iterations calls of the named
	// benchmark finished below the minimum time.
	TooFast(name string, iterations int)
	// Sampled reports one accepted per-iteration sample in milliseconds.
	Sampled(name string, iterations int, ms float64)
	// Finished is called once with the assembled results.
	Finished(results []Result)
}

// Observers fans notifications out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var list multiObserver
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) TooFast(name string, iterations int) {
	for _, o := range m {
		o.TooFast(name, iterations)
	}
}

func (m multiObserver) Sampled(name string, iterations int, ms float64) {
	for _, o := range m {
		o.Sampled(name, iterations, ms)
	}
}

func (m multiObserver) Finished(results []Result) {
	for _, o := range m {
		o.Finished(results)
	}
}

// Progress writes one '.' per accepted sample and one '!' per discarded
// too-fast sample, followed by a newline once the run is finished.
type Progress struct {
	w io.Writer
}

// NewProgress returns a Progress observer writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

func (p *Progress) TooFast(string, int)          { fmt.Fprint(p.w, "!") }
func (p *Progress) Sampled(string, int, float64) { fmt.Fprint(p.w, ".") }
func (p *Progress) Finished([]Result)            { fmt.Fprintln(p.w) }

type nopObserver struct{}

func (nopObserver) TooFast(string, int)          {}
func (nopObserver) Sampled(string, int, float64) {}
func (nopObserver) Finished([]Result)            {}
