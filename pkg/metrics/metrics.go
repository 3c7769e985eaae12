// Package metrics holds the Prometheus collectors for the service. Each
// Metrics value owns its registry so tests can build as many as they like.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Download outcomes used as the "outcome" label.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid_url"
	OutcomeTooLong    = "too_long"
	OutcomeEngine     = "engine_error"
	OutcomeExtraction = "extraction_error"
	OutcomeTimeout    = "timeout"
	OutcomeCanceled   = "canceled"
	OutcomeUnexpected = "unexpected"
)

type Metrics struct {
	registry *prometheus.Registry

	downloadsTotal  *prometheus.CounterVec
	engineDuration  *prometheus.HistogramVec
	ffmpegAvailable prometheus.Gauge
}

func New(namespace string) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Download submissions by outcome.",
		},
		[]string{"outcome"},
	)
	m.engineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_duration_seconds",
			Help:      "Wall time of extraction engine calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 900, 1800},
		},
		[]string{"op"},
	)
	m.ffmpegAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ffmpeg_available",
		Help:      "1 if the last ffmpeg probe succeeded, 0 otherwise.",
	})

	m.registry.MustRegister(m.downloadsTotal, m.engineDuration, m.ffmpegAvailable)
	return m
}

func (m *Metrics) RecordOutcome(outcome string) {
	m.downloadsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEngine(op string, took time.Duration) {
	m.engineDuration.WithLabelValues(op).Observe(took.Seconds())
}

func (m *Metrics) SetFFmpegAvailable(ok bool) {
	if ok {
		m.ffmpegAvailable.Set(1)
		return
	}
	m.ffmpegAvailable.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
