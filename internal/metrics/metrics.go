// Package metrics exposes Prometheus instrumentation for the mirror:
// refresh cycle outcomes, snapshot size, and HTTP serving stats.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "codename_board"

// Dedicated registry so the endpoint only carries this service's
// collectors.
var registry = prometheus.NewRegistry()

var (
	refreshTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Refresh cycles by range and outcome.",
	}, []string{"range", "outcome"})

	refreshDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of fetch+parse+project cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"range"})

	contestantCount = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "contestants",
		Help:      "Contestants in the current snapshot.",
	})

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "code"})

	httpDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// ObserveRefresh records the outcome and duration of one refresh cycle
// for the named range ("leaderboard" or "config").
func ObserveRefresh(rangeName string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	refreshTotal.WithLabelValues(rangeName, outcome).Inc()
	refreshDuration.WithLabelValues(rangeName).Observe(duration.Seconds())
}

// SetContestantCount records the size of the installed snapshot.
func SetContestantCount(n int) {
	contestantCount.Set(float64(n))
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(endpoint string, code int, duration time.Duration) {
	httpRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Handler serves the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
