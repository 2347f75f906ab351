package benchmark

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile of samples, interpolating linearly
// between the closest ranks. The input is not modified. p is clamped to
// [0, 100]; an empty input yields 0 and a single sample yields itself.
func Percentile(samples []float64, p int) float64 {
	n := len(samples)
	switch n {
	case 0:
		return 0
	case 1:
		return samples[0]
	}
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	h := float64(p)*0.01*float64(n-1) + 1
	k := int(math.Floor(h)) - 1
	f := math.Mod(h, 1)
	if k+1 >= n {
		return sorted[n-1]
	}
	return sorted[k] + f*(sorted[k+1]-sorted[k])
}
