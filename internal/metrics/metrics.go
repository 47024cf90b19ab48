// Package metrics exposes Prometheus instrumentation for the intake API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions persisted",
		},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	notificationEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Total number of notification email attempts",
		},
		[]string{"status"}, // sent, failed, skipped
	)

	backupWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_writes_total",
			Help: "Total number of backup append attempts",
		},
		[]string{"status"}, // written, skipped, failed
	)
)

// Middleware records request count and duration for every endpoint.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordContactSubmission records a persisted submission.
func RecordContactSubmission() {
	contactSubmissionsTotal.Inc()
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	rateLimitedTotal.Inc()
}

// RecordNotification records a notification attempt outcome.
func RecordNotification(sent bool, configured bool) {
	switch {
	case sent:
		notificationEmailsTotal.WithLabelValues("sent").Inc()
	case !configured:
		notificationEmailsTotal.WithLabelValues("skipped").Inc()
	default:
		notificationEmailsTotal.WithLabelValues("failed").Inc()
	}
}

// RecordBackup records a backup append outcome.
func RecordBackup(written bool, production bool) {
	switch {
	case written:
		backupWritesTotal.WithLabelValues("written").Inc()
	case production:
		backupWritesTotal.WithLabelValues("skipped").Inc()
	default:
		backupWritesTotal.WithLabelValues("failed").Inc()
	}
}
