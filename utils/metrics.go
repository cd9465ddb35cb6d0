package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// handler is the endpoint, type is the error class (validation, not_found, internal...).
	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_errors_total",
			Help: "Total app errors",
		},
		[]string{"handler", "type"},
	)

	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_points_awarded_total",
			Help: "Points awarded for activity completions",
		},
		[]string{"source"},
	)

	CompletionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_completions_total",
			Help: "Activity completion requests by outcome",
		},
		[]string{"result"},
	)

	EmailCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_emails_total",
			Help: "Transactional emails by template and delivery status",
		},
		[]string{"template", "status"},
	)

	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_reminders_sent_total",
			Help: "Reminder notifications dispatched",
		},
		[]string{"type"},
	)
)

var metricsOnce sync.Once

func InitMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(ReqCount, ReqDuration, ErrorCount,
			PointsAwarded, CompletionCount, EmailCount, RemindersSent)
	})
}
