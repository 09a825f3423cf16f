// Package metrics defines the custom Prometheus metrics for the events
// application. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventsapp"

// LoginsTotal counts credential exchanges.
// Labels:
//   - chain: "session" (form login) or "api" (token login)
//   - result: "ok" or "bad_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by chain and result.",
	},
	[]string{"chain", "result"},
)

// TokenValidationsTotal counts bearer-token checks on the API chain.
// Label:
//   - result: "ok", "missing", "invalid", or "unknown_subject"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "ok", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)
