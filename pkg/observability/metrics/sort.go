package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// sortTogglesTotal tracks toggle operations by field and outcome.
	// Labels: field, outcome (activated|flipped|deactivated|rejected)
	sortTogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sort_toggles_total",
			Help: "Total number of sort toggle operations",
		},
		[]string{"field", "outcome"},
	)

	// sortSessionsTotal counts sort sessions created.
	sortSessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sort_sessions_total",
			Help: "Total number of sort sessions created",
		},
	)
)

// Toggle outcomes
const (
	// OutcomeActivated marks a toggle that brought a field into the criteria.
	OutcomeActivated = "activated"
	// OutcomeFlipped marks a toggle that reversed an active field's direction.
	OutcomeFlipped = "flipped"
	// OutcomeDeactivated marks a toggle that removed a field from the criteria.
	OutcomeDeactivated = "deactivated"
	// OutcomeRejected marks a toggle that failed.
	OutcomeRejected = "rejected"
)

// RecordToggle records one toggle operation.
func RecordToggle(field, outcome string) {
	sortTogglesTotal.WithLabelValues(field, outcome).Inc()
}

// RecordSessionCreated counts a newly created sort session.
func RecordSessionCreated() {
	sortSessionsTotal.Inc()
}
