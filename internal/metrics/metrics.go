package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	SubmissionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_created_total",
			Help: "Public submissions stored, by kind",
		},
		[]string{"kind"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Email dispatch attempts by dispatch kind and result",
		},
		[]string{"kind", "result"},
	)

	AdminMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_mutations_total",
			Help: "Admin writes by record kind, action and result",
		},
		[]string{"kind", "action", "result"},
	)
)
