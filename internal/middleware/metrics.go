package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billsplitter_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billsplitter_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// BillsExtracted counts bills successfully extracted from images.
	BillsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billsplitter_bills_extracted_total",
		Help: "Bills successfully extracted from uploaded images.",
	})

	// ExtractionFailures counts per-image extraction failures.
	ExtractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billsplitter_extraction_failures_total",
		Help: "Uploaded images whose extraction failed.",
	})

	// SettlementsComputed counts ledger computations.
	SettlementsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billsplitter_settlements_computed_total",
		Help: "Settlement ledger computations.",
	})
)

// Metrics records request counts and latency. It must sit inside the chi
// router so the route pattern (not the raw path, which embeds session IDs)
// is available as a label.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
