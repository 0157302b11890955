// Package metrics exposes Prometheus collectors for conversions. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "html2md"

// Outcome labels for finished requests.
const (
	OutcomeFull    = "full"
	OutcomeSummary = "summary"
	OutcomeUsage   = "usage_error"
	OutcomeFetch   = "fetch_error"
	OutcomeParse   = "parse_error"
	OutcomeError   = "conversion_error"
)

// Pipeline stages measured in bytes.
const (
	StageRaw      = "raw"
	StageCleaned  = "cleaned"
	StageMarkdown = "markdown"
)

// Metrics holds the collectors registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	cache      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.HistogramVec
	queueDepth prometheus.Gauge
}

// New creates and registers the collectors, plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Conversion requests by outcome.",
		}, []string{"outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent converting one request.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"method"}),
		bytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_bytes",
			Help:      "Document size at each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}, []string{"stage"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_queue_depth",
			Help:      "Conversions waiting for a worker.",
		}),
	}

	m.registry.MustRegister(
		m.requests, m.cache, m.duration, m.bytes, m.queueDepth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Request counts one finished request.
func (m *Metrics) Request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// Duration records how long a conversion with the given fetch method took.
func (m *Metrics) Duration(method string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

// Bytes records a document size at a pipeline stage.
func (m *Metrics) Bytes(stage string, n int) {
	if m == nil {
		return
	}
	m.bytes.WithLabelValues(stage).Observe(float64(n))
}

// QueueDepth sets the number of waiting conversions.
func (m *Metrics) QueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}
