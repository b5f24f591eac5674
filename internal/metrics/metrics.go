// Package metrics provides Prometheus metrics for the assistant service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route template, method and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// RequestLatency tracks HTTP latency by route template.
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistant",
			Name:      "http_request_latency_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"route"},
	)

	// UpstreamFailures counts context sources that could not be read.
	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "upstream_failures_total",
			Help:      "Context source reads that failed or timed out",
		},
		[]string{"source"},
	)

	// ResponderFallbacks counts replies replaced by the fallback apology.
	ResponderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "responder_fallbacks_total",
			Help:      "Replies that fell back to the static apology",
		},
		[]string{"reason"},
	)

	// MemoryWriteFailures counts chat facts that could not be persisted.
	MemoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "memory_write_failures_total",
			Help:      "Facts extracted from chat that failed to persist",
		},
	)

	// MemoriesRemembered counts facts persisted, by origin tag.
	MemoriesRemembered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "memories_remembered_total",
			Help:      "Facts appended to the memory store",
		},
		[]string{"origin"},
	)

	// HandlerPanics counts panics recovered from HTTP handlers, by route template.
	HandlerPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "http_handler_panics_total",
			Help:      "Handler panics answered with 500",
		},
		[]string{"route"},
	)
)

// RecordUpstreamFailure records a failed context source read.
func RecordUpstreamFailure(source string) {
	UpstreamFailures.WithLabelValues(source).Inc()
}

// RecordFallback records a reply replaced by the fallback.
func RecordFallback(reason string) {
	ResponderFallbacks.WithLabelValues(reason).Inc()
}

// RecordPanic records a recovered handler panic.
func RecordPanic(route string) {
	HandlerPanics.WithLabelValues(route).Inc()
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency labelled by the matched route template.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.statusCode)).Inc()
		RequestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
