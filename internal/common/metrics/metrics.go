// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepsCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_steps_committed_total",
			Help: "Total number of step drafts committed to the store",
		},
		[]string{"step", "policy"},
	)

	StepsBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_steps_blocked_total",
			Help: "Total number of step advances blocked by validation",
		},
		[]string{"step"},
	)

	SubmissionsFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizard_submissions_finalized_total",
			Help: "Total number of applications that passed final validation",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wizard_http_request_duration_seconds",
			Help: "Duration of wizard HTTP shell requests in seconds",
		},
		[]string{"route", "method"},
	)
)
