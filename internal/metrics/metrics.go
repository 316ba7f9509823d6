// Package metrics owns the prometheus collectors for the aggregation layer:
// limiter occupancy, cache outcomes and upstream call latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tourapi"

// Metrics groups every collector registered by the service.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without instrumentation in tests.
type Metrics struct {
	registry *prometheus.Registry

	limiterInFlight *prometheus.GaugeVec
	limiterWaits    *prometheus.CounterVec
	cacheRequests   *prometheus.CounterVec
	cacheEntries    *prometheus.GaugeVec
	upstreamTotal   *prometheus.CounterVec
	upstreamSeconds *prometheus.HistogramVec
}

// New creates a registry with process/go collectors and the service metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		limiterInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "limiter_in_flight",
			Help:      "Operations currently admitted by a concurrency limiter.",
		}, []string{"limiter"}),
		limiterWaits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limiter_waits_total",
			Help:      "Acquisitions that had to wait for a free slot.",
		}, []string{"limiter"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by outcome (hit, miss, shared, negative).",
		}, []string{"cache", "outcome"}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries currently held by a cache.",
		}, []string{"cache"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outbound tourism API calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound tourism API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	registry.MustRegister(
		m.limiterInFlight,
		m.limiterWaits,
		m.cacheRequests,
		m.cacheEntries,
		m.upstreamTotal,
		m.upstreamSeconds,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// LimiterInFlight returns the occupancy gauge of the named limiter.
func (m *Metrics) LimiterInFlight(limiter string) prometheus.Gauge {
	if m == nil {
		return nil
	}
	return m.limiterInFlight.WithLabelValues(limiter)
}

// LimiterWaits returns the wait counter of the named limiter.
func (m *Metrics) LimiterWaits(limiter string) prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.limiterWaits.WithLabelValues(limiter)
}

// CacheRequest counts one lookup against the named cache.
func (m *Metrics) CacheRequest(cache, outcome string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(cache, outcome).Inc()
}

// CacheEntries records the current size of the named cache.
func (m *Metrics) CacheEntries(cache string, n int) {
	if m == nil {
		return
	}
	m.cacheEntries.WithLabelValues(cache).Set(float64(n))
}

// ObserveUpstream records one outbound call.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}
