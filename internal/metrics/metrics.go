// Package metrics defines the custom Prometheus metrics for notehub. It is
// the single source of truth for metric names, labels, and help strings;
// everything registers against the default registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notehub"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Failures are not broken down by cause
// on purpose; the split would leak the username-enumeration signal the API
// withholds.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NoteOperationsTotal counts completed note operations.
// Label:
//   - op: "create", "update", or "delete"
var NoteOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_operations_total",
		Help:      "Total number of successful note mutations, by operation.",
	},
	[]string{"op"},
)

// UnauthorizedTotal counts requests rejected by the ownership guard.
var UnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unauthorized_total",
		Help:      "Total number of requests rejected because the actor does not own the resource.",
	},
)
