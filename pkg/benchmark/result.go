package benchmark

import "time"

// Result holds the statistics measured for one benchmark. Times are in
// milliseconds per iteration.
type Result struct {
	Name        string  `json:"name"`
	MinimumTime float64 `json:"minimumTime"`
	P80         float64 `json:"p80"`
}

// Minimum returns MinimumTime as a time.Duration.
func (r Result) Minimum() time.Duration { return msToDuration(r.MinimumTime) }

// P80Duration returns P80 as a time.Duration.
func (r Result) P80Duration() time.Duration { return msToDuration(r.P80) }

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
