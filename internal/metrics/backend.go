package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of calls made to the backup backend",
		},
		[]string{"operation", "status"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// ObserveBackendRequest records one backend call. The operation label is
// the API path relative to the version prefix, e.g. "backup-sources/list".
func ObserveBackendRequest(operation string, status int, elapsed time.Duration) {
	backendRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	backendRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
