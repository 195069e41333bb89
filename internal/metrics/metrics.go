package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_backend_requests_total",
			Help: "Backend API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_backend_request_duration_seconds",
			Help:    "Latency of backend API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_notifications_total",
			Help: "Notifications shown to users by severity",
		},
		[]string{"severity"},
	)

	AutoResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_chat_autoresponses_total",
			Help: "Chat autoresponder matches by rule",
		},
		[]string{"rule"},
	)

	GuardRedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_guard_redirects_total",
			Help: "Visitors sent to the login page by the session guard",
		},
		[]string{"reason"},
	)

	ChatStreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_chat_streams_active",
			Help: "Open chat live-update streams",
		},
	)
)

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		BackendRequestsTotal,
		BackendRequestDuration,
		NotificationsTotal,
		AutoResponsesTotal,
		GuardRedirectsTotal,
		ChatStreamsActive,
	)
}
