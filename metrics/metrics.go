// Package metrics exposes Prometheus instrumentation for the client's
// cache and upstream request paths.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the upstream request counter.
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeRateLimit = "rate_limited"
	OutcomeConnect   = "connect_error"
)

// Metrics holds the collectors recorded by the request coordinator. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	requests   *prometheus.CounterVec
	cacheHits  prometheus.Counter
	cacheMiss  prometheus.Counter
	lockouts   prometheus.Counter
	queueDepth prometheus.Gauge
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them via the default handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "truckersmp_requests_total",
			Help: "Upstream API requests by outcome.",
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truckersmp_cache_hits_total",
			Help: "Requests served from the response cache.",
		}),
		cacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truckersmp_cache_misses_total",
			Help: "Requests that had to go upstream.",
		}),
		lockouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truckersmp_lockouts_total",
			Help: "Handled failures that held an endpoint gate closed.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "truckersmp_request_queue_depth",
			Help: "Requests currently waiting on or holding a rate-limit permit.",
		}),
	}
	reg.MustRegister(m.requests, m.cacheHits, m.cacheMiss, m.lockouts, m.queueDepth)
	return m
}

// Request records the outcome of one upstream call.
func (m *Metrics) Request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// CacheHit records a request served from cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss records a request that went upstream.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMiss.Inc()
}

// Lockout records a handled failure that closed a gate for the cooldown.
func (m *Metrics) Lockout() {
	if m == nil {
		return
	}
	m.lockouts.Inc()
}

// QueueDepth tracks the live rate-limit queue length.
func (m *Metrics) QueueDepth(n int64) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
