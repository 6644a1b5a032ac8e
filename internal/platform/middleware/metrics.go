package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
		[]string{"service"},
	)

	// dclgLooksRequestedTotal buckets generateLooks calls by the numLooks
	// they asked for. Labeled on a clamped bucket rather than the raw query
	// value so a malformed or adversarial numLooks can never turn this into
	// a cardinality blowup.
	dclgLooksRequestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dclg_looks_requested_total",
			Help: "Count of generateLooks requests by requested numLooks bucket",
		},
		[]string{"service", "num_looks"},
	)
)

// numLooksBucket maps the numLooks query parameter to a small fixed label
// set: "default" when omitted, "invalid" when out of the [1,10] range spec.md
// allows, otherwise the literal count.
func numLooksBucket(r *http.Request) string {
	v := r.URL.Query().Get("numLooks")
	if v == "" {
		return "default"
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 10 {
		return "invalid"
	}
	return strconv.Itoa(n)
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PrometheusMetrics returns middleware that collects HTTP request metrics,
// plus a bucketed numLooks counter for the generateLooks route.
func PrometheusMetrics(serviceName string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			httpRequestsInFlight.WithLabelValues(serviceName).Inc()
			defer httpRequestsInFlight.WithLabelValues(serviceName).Dec()

			rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = "unknown"
			}

			httpRequestsTotal.WithLabelValues(serviceName, r.Method, routePattern, status).Inc()
			httpRequestDuration.WithLabelValues(serviceName, r.Method, routePattern, status).Observe(duration)

			if chi.URLParam(r, "anchorSku") != "" {
				dclgLooksRequestedTotal.WithLabelValues(serviceName, numLooksBucket(r)).Inc()
			}
		})
	}
}
