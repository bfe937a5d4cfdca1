package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siahsang/conduit/internal/utils/stringutils"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "conduit", Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "conduit", Name: "http_request_duration_seconds", Help: "HTTP request latency by route and method.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	FavoriteMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "conduit", Name: "favorite_mutations_total", Help: "Favorite edges created or removed."},
		[]string{"action"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "conduit", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, FavoriteMutations, RateLimited)
}

// StatusRecorder remembers the status code written through it.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument records count and latency of next under the route pattern.
func Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewStatusRecorder(w)
		next(rec, r)

		HTTPLatency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(route, r.Method, stringutils.ToString(rec.Status)).Inc()
	}
}

// Exposer serves the default registry in the Prometheus text format.
func Exposer() http.Handler {
	return promhttp.Handler()
}
