// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ora_lists"

// Metrics groups the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Operations      *prometheus.CounterVec
	Entities        *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "List access operations by operation tag and outcome.",
		}, []string{"op", "outcome"}),
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Stored entities by kind, refreshed by the stats job.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.Requests, m.RequestDuration, m.Operations, m.Entities)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveOperation counts one access-layer call. outcome is "ok" or the
// error kind.
func (m *Metrics) ObserveOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) SetEntities(kind string, n int) {
	if m == nil {
		return
	}
	m.Entities.WithLabelValues(kind).Set(float64(n))
}
