// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rest_api"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry prometheus.Gatherer

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Resource operations, labeled by resource name, operation and outcome.
	ResourceOperations *prometheus.CounterVec

	TokensIssued  *prometheus.CounterVec
	AuthFailures  *prometheus.CounterVec
	TokensRevoked prometheus.Counter
	DenylistSize  prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg
// uses a fresh registry carrying the Go and process collectors.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests, labeled by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ResourceOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_operations_total",
			Help:      "Total number of resource operations, labeled by resource, operation and outcome",
		}, []string{"resource", "operation", "outcome"}),
		TokensIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Total number of tokens issued, labeled by token type and grant",
		}, []string{"type", "grant"}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Total number of rejected credentials, labeled by reason",
		}, []string{"reason"}),
		TokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_revoked_total",
			Help:      "Total number of tokens added to the denylist",
		}),
		DenylistSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "denylist_entries",
			Help:      "Current number of entries in the in-memory token denylist",
		}),
	}
}

// Handler returns the exposition handler for the registry m was built on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncrementResourceOperation counts a resource operation. outcome is "ok"
// or the error kind that ended it.
func (m *Metrics) IncrementResourceOperation(resource, operation, outcome string) {
	m.ResourceOperations.WithLabelValues(resource, operation, outcome).Inc()
}

func (m *Metrics) IncrementTokensIssued(tokenType, grant string) {
	m.TokensIssued.WithLabelValues(tokenType, grant).Inc()
}

func (m *Metrics) IncrementAuthFailures(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementTokensRevoked() {
	m.TokensRevoked.Inc()
}

func (m *Metrics) SetDenylistSize(n int) {
	m.DenylistSize.Set(float64(n))
}
