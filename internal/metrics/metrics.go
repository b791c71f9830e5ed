package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ActivitiesLogged counts activity log writes by outcome (ok, error).
	ActivitiesLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_logged_total",
			Help: "Activity log writes by outcome",
		},
		[]string{"outcome"},
	)
)

var idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{24})(/|$)`)

// NormalizePath replaces numeric and ObjectID path segments with {id}, e.g.
// /user/role/65f0c3e2a1b2c3d4e5f60718 -> /user/role/{id}.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncActivitiesLogged counts one activity write; ok reports whether it was stored.
func IncActivitiesLogged(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	ActivitiesLogged.WithLabelValues(outcome).Inc()
}
