// Package metrics defines the Prometheus metrics of the HTTP service.
//
// Metric naming follows Prometheus conventions:
//   - journynow_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that tests and multiple servers in one
// process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts HTTP requests by method, route pattern and status.
	RequestsTotal *prometheus.CounterVec
	// RequestDurationSeconds is a histogram of request latency.
	RequestDurationSeconds *prometheus.HistogramVec
	// AuthEventsTotal counts login, register and logout outcomes.
	AuthEventsTotal *prometheus.CounterVec
	// SessionsSweptTotal counts sessions removed by the periodic sweep.
	SessionsSweptTotal prometheus.Counter
}

// New creates and registers all metrics, including Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journynow_http_requests_total",
				Help: "Total HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "journynow_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journynow_auth_events_total",
				Help: "Authentication events by kind and result.",
			},
			[]string{"event", "result"},
		),
		SessionsSweptTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "journynow_sessions_swept_total",
				Help: "Expired sessions removed by the background sweep.",
			},
		),
	}
	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSeconds,
		m.AuthEventsTotal,
		m.SessionsSweptTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// AuthEvent records an authentication outcome. result is "success" or
// "failure".
func (m *Metrics) AuthEvent(event string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.AuthEventsTotal.WithLabelValues(event, result).Inc()
}

// SessionsSwept adds n to the sweep counter.
func (m *Metrics) SessionsSwept(n int64) {
	m.SessionsSweptTotal.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
