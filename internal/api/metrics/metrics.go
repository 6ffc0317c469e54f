// Package metrics defines all custom Prometheus metrics for the todo API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// ── Pipeline metrics ──────────────────────────────────────────────────────────

// RequestsDispatchedTotal counts requests leaving the pipeline.
// Labels:
//   - request: the command/query type name (e.g. "Login")
//   - outcome: "ok", "error", or "rejected" (validation failure)
var RequestsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_dispatched_total",
		Help:      "Total number of commands/queries dispatched, by request type and outcome.",
	},
	[]string{"request", "outcome"},
)

// ValidationFailuresTotal counts dispatches rejected by the validation stage.
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of dispatches rejected by validators, by request type.",
	},
	[]string{"request"},
)

// DispatchDuration measures validate-plus-handle time per request type.
var DispatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_duration_seconds",
		Help:      "Duration of a full pipeline dispatch, from validation to handler return.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"request"},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodoExportsTotal counts CSV exports served.
var TodoExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_exports_total",
		Help:      "Total number of todo list CSV exports.",
	},
)
