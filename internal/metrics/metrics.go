// Package metrics exports benchmark measurements as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"readygo/pkg/benchmark"
)

// Recorder collects Runner progress into a private Prometheus registry. It
// implements benchmark.Observer.
type Recorder struct {
	registry *prometheus.Registry

	TooFastSamples *prometheus.CounterVec
	Iterations     *prometheus.GaugeVec
	SampleSeconds  *prometheus.HistogramVec
	MinimumSeconds *prometheus.GaugeVec
	P80Seconds     *prometheus.GaugeVec
}

var _ benchmark.Observer = (*Recorder)(nil)

// NewRecorder creates and registers all benchmark metrics.
func NewRecorder() *Recorder {
	m := &Recorder{registry: prometheus.NewRegistry()}

	m.TooFastSamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readygo_too_fast_samples_total",
			Help: "Samples discarded because they finished below the minimum time",
		},
		[]string{"benchmark"},
	)

	m.Iterations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "readygo_iterations",
			Help: "Inner iteration count used for each sample",
		},
		[]string{"benchmark"},
	)

	m.SampleSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readygo_sample_seconds",
			Help:    "Overhead-cancelled per-iteration sample times",
			Buckets: prometheus.ExponentialBuckets(1e-9, 10, 11),
		},
		[]string{"benchmark"},
	)

	m.MinimumSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "readygo_minimum_seconds",
			Help: "Fastest per-iteration time of the last run",
		},
		[]string{"benchmark"},
	)

	m.P80Seconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "readygo_p80_seconds",
			Help: "80th percentile per-iteration time of the last run",
		},
		[]string{"benchmark"},
	)

	m.registry.MustRegister(
		m.TooFastSamples,
		m.Iterations,
		m.SampleSeconds,
		m.MinimumSeconds,
		m.P80Seconds,
	)

	return m
}

func (m *Recorder) TooFast(name string, iterations int) {
	m.TooFastSamples.WithLabelValues(name).Inc()
}

func (m *Recorder) Sampled(name string, iterations int, ms float64) {
	m.Iterations.WithLabelValues(name).Set(float64(iterations))
	m.SampleSeconds.WithLabelValues(name).Observe(ms / 1e3)
}

func (m *Recorder) Finished(results []benchmark.Result) {
	for _, r := range results {
		m.MinimumSeconds.WithLabelValues(r.Name).Set(r.MinimumTime / 1e3)
		m.P80Seconds.WithLabelValues(r.Name).Set(r.P80 / 1e3)
	}
}

// WriteTextfile writes the registry in the text exposition format, as read by
// node_exporter's textfile collector.
func (m *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
