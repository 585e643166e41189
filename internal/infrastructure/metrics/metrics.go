// Package metrics provides Prometheus collection and exposition.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Grant outcomes
const (
	GrantIssued   = "issued"
	GrantRejected = "rejected"
	GrantFailed   = "failed"
)

// MetricsCollector is used by services and handlers to record events
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordGrant(grantType, outcome string)
	RecordReferentialFault()
}

// Collector is the Prometheus implementation of MetricsCollector
type Collector struct {
	requests         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	grants           *prometheus.CounterVec
	referentialFault prometheus.Counter
}

// NewCollector creates a Collector registered on reg
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		grants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_grants_total",
			Help:      "Token requests by grant type and outcome",
		}, []string{"grant_type", "outcome"}),
		referentialFault: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "referential_integrity_faults_total",
			Help:      "Courses whose category reference could not be resolved",
		}),
	}

	reg.MustRegister(c.requests, c.latency, c.grants, c.referentialFault)
	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordGrant(grantType, outcome string) {
	c.grants.WithLabelValues(grantType, outcome).Inc()
}

func (c *Collector) RecordReferentialFault() {
	c.referentialFault.Inc()
}

// Middleware records every request under its chi route pattern
func Middleware(collector MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			collector.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		})
	}
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordGrant(string, string)                          {}
func (Nop) RecordReferentialFault()                             {}
