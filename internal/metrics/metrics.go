// Package metrics exposes Prometheus collectors for the chart service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chrissnell/skychart/pkg/houses"
)

const namespace = "skychart"

// Collector holds the service's metrics on its own registry
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	rateLimited     prometheus.Counter
	houseFallbacks  *prometheus.CounterVec
	positions       *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them, along with the Go
// runtime and process collectors, on a fresh registry.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent serving HTTP requests",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"route"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "code"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the per-client rate limiter",
			},
		),
		houseFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "house_fallbacks_total",
				Help:      "House calculations that fell back to Porphyry",
			},
			[]string{"system"},
		),
		positions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "positions_total",
				Help:      "Body positions calculated",
			},
			[]string{"body"},
		),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.rateLimited,
		m.houseFallbacks,
		m.positions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest observes one served request
func (m *Collector) RecordRequest(route string, code int, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// RecordRateLimited counts a request rejected with 429
func (m *Collector) RecordRateLimited() {
	m.rateLimited.Inc()
}

// RecordPosition counts one calculated body position
func (m *Collector) RecordPosition(body string) {
	m.positions.WithLabelValues(body).Inc()
}

// HouseFallback matches houses.FallbackFunc so it can be passed to
// Engine.OnFallback.
func (m *Collector) HouseFallback(requested houses.System, _ float64, _ error) {
	m.houseFallbacks.WithLabelValues(requested.String()).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for inspection
func (m *Collector) Gatherer() prometheus.Gatherer {
	return m.registry
}
