// Package metrics defines all custom Prometheus metrics for the Prospectius
// CRM API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics registered here use promauto, so importing the package is enough;
// the /metrics endpoint exposes them via the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "prospectius"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "throttled", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ProspectsCreatedTotal counts newly created prospects.
// Label:
//   - type: "particulier", "societe", or "organisation"
var ProspectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prospects_created_total",
		Help:      "Total number of prospects created, by prospect type.",
	},
	[]string{"type"},
)

// InteractionsRecordedTotal counts recorded interactions.
// Label:
//   - type: "email", "appel", "sms", "reunion", or "note"
var InteractionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interactions_recorded_total",
		Help:      "Total number of interactions recorded, by interaction type.",
	},
	[]string{"type"},
)

// ProspectsDeletedTotal counts cascade deletions of prospects.
var ProspectsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prospects_deleted_total",
		Help:      "Total number of prospects removed, including their interactions.",
	},
)
