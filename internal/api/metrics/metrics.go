// Package metrics defines and registers all custom Prometheus metrics for
// the ShareStay client core. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; expose them however the embedding application prefers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sharestay_client"

// ── Outbound request metrics ──────────────────────────────────────────────────

// RequestsTotal counts outbound API requests.
// Labels:
//   - method: HTTP method of the request
//   - status_class: "2xx", "4xx", "5xx", or "error" for transport failures
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of outbound API requests, by method and status class.",
	},
	[]string{"method", "status_class"},
)

// RequestDuration measures end-to-end duration of outbound API requests.
// Label:
//   - method: HTTP method of the request
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outbound API requests from send to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthNoticesTotal counts blocking auth notices raised by the transport.
// Label:
//   - kind: "session_expired" (401) or "account_suspended" (403)
var AuthNoticesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_notices_total",
		Help:      "Total number of blocking authentication notices shown to the user.",
	},
	[]string{"kind"},
)

// SessionTransitionsTotal counts session phase transitions.
// Label:
//   - phase: the phase entered ("resolving", "authenticated", "anonymous")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by phase entered.",
	},
	[]string{"phase"},
)

// StatusClass buckets an HTTP status code for the status_class label.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "error"
	}
}
