package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"readygo/pkg/benchmark"
)

func TestCompare(t *testing.T) {
	prev := &Baseline{
		Results: []benchmark.Result{
			{Name: "B1", MinimumTime: 100, P80: 200},
			{Name: "B2", MinimumTime: 200, P80: 300},
		},
	}
	curr := []benchmark.Result{
		{Name: "b1", MinimumTime: 110, P80: 160}, // 10% slower minimum, 20% faster p80
		{Name: "B3", MinimumTime: 300, P80: 400}, // New
	}

	comps := Compare(prev, curr)

	assert.Len(t, comps, 1) // Only B1 matches

	c := comps[0]
	assert.Equal(t, "b1", c.Name)
	assert.InDelta(t, 10.0, c.MinimumDiff, 0.01)
	assert.InDelta(t, -20.0, c.P80Diff, 0.01)
	assert.True(t, c.Improved(10))
	assert.False(t, c.Regressed(10))
	assert.Equal(t, "b1: -20.00% p80", c.String())
}

func TestCompare_ZeroBaseline(t *testing.T) {
	prev := &Baseline{Results: []benchmark.Result{{Name: "zero"}}}
	comps := Compare(prev, []benchmark.Result{{Name: "zero", MinimumTime: 1, P80: 1}})

	assert.Len(t, comps, 1)
	assert.Zero(t, comps[0].P80Diff)
	assert.False(t, comps[0].Regressed(0))
}

func TestCompare_NilBaseline(t *testing.T) {
	assert.Empty(t, Compare(nil, []benchmark.Result{{Name: "x"}}))
}

func TestDiff(t *testing.T) {
	c := Diff(
		benchmark.Result{Name: "x", MinimumTime: 2, P80: 4},
		benchmark.Result{Name: "x", MinimumTime: 3, P80: 5},
	)
	assert.InDelta(t, 50.0, c.MinimumDiff, 0.01)
	assert.InDelta(t, 25.0, c.P80Diff, 0.01)
	assert.True(t, c.Regressed(10))
	assert.False(t, c.Regressed(25))
	assert.False(t, c.Improved(10))
}
