package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopwise_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopwise_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopwise_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Auth metrics
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopwise_auth_events_total",
			Help: "Authentication operations by outcome",
		},
		[]string{"operation", "result"},
	)

	OTPChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopwise_otp_checks_total",
			Help: "OTP verification attempts by provider outcome",
		},
		[]string{"outcome"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopwise_emails_sent_total",
			Help: "Transactional emails by kind and status",
		},
		[]string{"kind", "status"},
	)
)

// RecordAuth counts an auth operation. A nil err is recorded as "success".
func RecordAuth(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AuthEventsTotal.WithLabelValues(operation, result).Inc()
}
