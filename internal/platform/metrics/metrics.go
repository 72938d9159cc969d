// Package metrics exposes the process prometheus collectors and the /metrics handler
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wikicord"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})

	SignatureChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signature_checks_total",
		Help:      "Inbound request signature checks by outcome (ok, missing, invalid, too_large).",
	}, []string{"outcome"})

	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interactions_total",
		Help:      "Dispatched interactions by kind, command, and outcome.",
	}, []string{"kind", "command", "outcome"})

	InteractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "interaction_duration_seconds",
		Help:      "Dispatch latency in seconds by interaction kind.",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"kind"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Outbound collaborator calls by service, operation, and status (or error).",
	}, []string{"service", "op", "status"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Outbound collaborator latency in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"service", "op"})

	RequestTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_timeouts_total",
		Help:      "Requests abandoned because the per-request deadline passed.",
	})

	PanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panics_total",
		Help:      "Recovered panics by site (http, dispatch, deadline).",
	}, []string{"site"})
)

// Handler returns an http.Handler that serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one outbound call; status is the HTTP code or "error"
func ObserveUpstream(service, op, status string, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(service, op, status).Inc()
	UpstreamDuration.WithLabelValues(service, op).Observe(elapsed.Seconds())
}

// ObserveInteraction records one dispatched interaction
func ObserveInteraction(kind, command, outcome string, elapsed time.Duration) {
	InteractionsTotal.WithLabelValues(kind, command, outcome).Inc()
	InteractionDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Middleware wraps an http.Handler to record request metrics.
// the route label is the chi pattern when available so ids never become labels
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		route := routeOf(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath buckets URL paths to avoid high cardinality.
// It keeps the first two path segments and drops the rest.
func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p == "/metrics" {
		return p
	}
	segments := 0
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			segments++
			if segments >= 2 {
				return p[:i]
			}
		}
	}
	return p
}
