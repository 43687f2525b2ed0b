package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/adilbekov/shopscout/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scrape metrics

	ScrapeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shopscout",
		Name:      "scrape_duration_seconds",
		Help:      "Duration of one outbound page scrape.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})

	ScrapesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopscout",
		Name:      "scrapes_total",
		Help:      "Total page scrapes, by outcome.",
	}, []string{"outcome"})

	// Reconciler metrics

	ReconcileAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopscout",
		Name:      "reconcile_attempts_total",
		Help:      "Generation attempts made by the reconciler, by outcome.",
	}, []string{"outcome"})

	// Janitor metrics

	TokensPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopscout",
		Name:      "tokens_purged_total",
		Help:      "Stale verification tokens removed by the janitor.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shopscout",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopscout",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		ScrapeDuration,
		ScrapesTotal,
		ReconcileAttemptsTotal,
		TokensPurgedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if result.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
