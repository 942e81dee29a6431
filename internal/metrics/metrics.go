// Package metrics holds the Prometheus collectors exported on /metrics:
//   - http_request_total: counter by method, route and status
//   - http_request_duration_seconds: histogram by method and route
//   - http_request_in_flight: gauge of concurrent requests
//   - search_requests_total: counter by searched entity and outcome
//   - pltab_cache_total: counter of reference cache hits, misses and errors
//   - login_throttle_buckets: gauge of client IPs with a failed-login bucket
//
// All collectors are registered with the default registry at init.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GTDGit/pharmreg_api/internal/utils"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Search requests by entity and outcome (ok, empty, invalid, error)",
		},
		[]string{"entity", "outcome"},
	)

	ReferenceCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pltab_cache_total",
			Help: "Reference table cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	LoginThrottleBuckets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "login_throttle_buckets",
			Help: "Client IPs currently tracked by the failed-login throttle",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(SearchRequests)
	prometheus.MustRegister(ReferenceCache)
	prometheus.MustRegister(LoginThrottleBuckets)
}

// ObserveSearch records the outcome of one search request.
func ObserveSearch(entity string, total int, err error) {
	outcome := "ok"
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Status < 500,
		errors.Is(err, utils.ErrNoFilter),
		errors.Is(err, utils.ErrInvalidPage):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	case total == 0:
		outcome = "empty"
	}
	SearchRequests.WithLabelValues(entity, outcome).Inc()
}
