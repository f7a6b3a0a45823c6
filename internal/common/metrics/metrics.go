package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_processed_total",
			Help: "Total number of messages processed, by classified intent",
		},
		[]string{"intent"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_collaborator_failures_total",
			Help: "Total number of collaborator call failures, by error code",
		},
		[]string{"error_code"},
	)

	InterpretDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_interpret_duration_seconds",
			Help: "Duration of message interpretation and reply building",
		},
		[]string{"intent"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_sessions_active",
			Help: "Number of sessions with live history in the store",
		},
	)
)
