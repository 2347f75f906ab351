package baseline

import (
	"fmt"

	"readygo/pkg/benchmark"
)

// Comparison is the change of one benchmark against its baseline.
type Comparison struct {
	Name        string
	MinimumDiff float64 // Percentage change
	P80Diff     float64 // Percentage change
	Baseline    benchmark.Result
	Current     benchmark.Result
}

// Compare matches current results against b by name. Benchmarks without a
// baseline entry are left out.
func Compare(b *Baseline, current []benchmark.Result) []Comparison {
	var comparisons []Comparison
	for _, c := range current {
		if p := b.Lookup(c.Name); p != nil {
			comparisons = append(comparisons, Diff(*p, c))
		}
	}
	return comparisons
}

// Diff compares one result against its baseline. A zero baseline value
// yields a zero change.
func Diff(base, current benchmark.Result) Comparison {
	comp := Comparison{
		Name:     current.Name,
		Baseline: base,
		Current:  current,
	}
	if base.MinimumTime > 0 {
		comp.MinimumDiff = (current.MinimumTime - base.MinimumTime) / base.MinimumTime * 100
	}
	if base.P80 > 0 {
		comp.P80Diff = (current.P80 - base.P80) / base.P80 * 100
	}
	return comp
}

// Regressed reports whether p80 grew by more than threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.P80Diff > threshold
}

// Improved reports whether p80 shrank by more than threshold percent.
func (c Comparison) Improved(threshold float64) bool {
	return c.P80Diff < -threshold
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% p80", c.Name, c.P80Diff)
}
