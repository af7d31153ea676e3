package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// requestDuration tracks how long each API call takes.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "letters_api_request_duration_seconds",
			Help:    "Duration of AgenticLetters API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	// requestsTotal counts API calls by operation and outcome.
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letters_api_requests_total",
			Help: "Total number of AgenticLetters API requests",
		},
		[]string{"operation", "status"},
	)
)

func init() {
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(requestsTotal)
}

// recordRequest records one API call. Status is the HTTP status code or
// "network_error" when the request never completed.
func recordRequest(operation string, status string, duration float64) {
	requestDuration.WithLabelValues(operation, status).Observe(duration)
	requestsTotal.WithLabelValues(operation, status).Inc()
}
