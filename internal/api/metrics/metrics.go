// Package metrics defines and registers the custom Prometheus metrics of the
// account portal. It is the single source of truth for metric names, labels
// and help strings.
//
// All metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsEstablishedTotal counts successful POST /sessions/ calls.
// Label:
//   - user: "created" for a first session, "existing" otherwise
var SessionsEstablishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established, by whether the user record was created.",
	},
	[]string{"user"},
)

// SessionFailuresTotal counts rejected POST /sessions/ calls.
// Label:
//   - reason: e.g. "header_missing", "verification_failed", "name_required", "store_error"
var SessionFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_failures_total",
		Help:      "Total number of session requests rejected, by reason.",
	},
	[]string{"reason"},
)

// LogoutsTotal counts logout requests.
// Label:
//   - result: "ok" or "error"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests, by result.",
	},
	[]string{"result"},
)

// ── Token verification metrics ────────────────────────────────────────────────

// TokenVerifyRetriesTotal counts backoff waits caused by clock-skew errors.
var TokenVerifyRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verify_retries_total",
		Help:      "Total number of token verification retries after clock-skew errors.",
	},
)

// TokenVerifyDuration measures token verification including retries.
// Label:
//   - outcome: "ok" or "error"
var TokenVerifyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "token_verify_duration_seconds",
		Help:      "Duration of identity token verification, retries included.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)

// Outcome maps an error to the "ok"/"error" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
