package benchmark

import "time"

// Timer is a restartable stopwatch.
type Timer interface {
	// Restart resets the elapsed time to zero and starts timing.
	Restart()
	// Stop freezes the elapsed time.
	Stop()
	// ElapsedMilliseconds reports the time accumulated since the last
	// Restart. It may be read while the timer is running.
	ElapsedMilliseconds() float64
}

// Stopwatch is a Timer backed by the monotonic clock.
type Stopwatch struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewStopwatch returns a stopped Stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Restart() {
	s.elapsed = 0
	s.running = true
	s.start = time.Now()
}

func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.elapsed += time.Since(s.start)
	s.running = false
}

func (s *Stopwatch) ElapsedMilliseconds() float64 {
	d := s.elapsed
	if s.running {
		d += time.Since(s.start)
	}
	return float64(d) / float64(time.Millisecond)
}
