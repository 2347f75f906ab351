package benchmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	clock := &fakeClock{}
	b := &fakeBenchmark{name: "half", clock: clock, cost: 0.5}
	var buf bytes.Buffer
	r, _ := newFakeRunner(t, clock, []Benchmark{b}, WithObserver(NewProgress(&buf)), WithOuterIterations(4))

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "!!!....\n", buf.String())
}

func TestObservers_FanOut(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	obs := Observers(first, nil, second)

	obs.TooFast("x", 1)
	obs.Sampled("x", 2, 0.5)
	obs.Finished([]Result{{Name: "x"}})

	for _, o := range []*recordingObserver{first, second} {
		assert.Equal(t, []int{1}, o.tooFast)
		assert.Equal(t, []float64{0.5}, o.samples)
		assert.Len(t, o.finished, 1)
	}
}

func TestFunc(t *testing.T) {
	calls := 0
	b := Func("counter", func() { calls++ })
	assert.Equal(t, "counter", b.Name())
	assert.NoError(t, b.Setup())
	b.Go()
	b.Go()
	assert.NoError(t, b.Cleanup())
	assert.Equal(t, 2, calls)
}
