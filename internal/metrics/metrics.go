// Package metrics defines the Prometheus metrics of the EduBlog client. It is
// the single source of truth for metric names, labels, and help strings.
//
// All metrics are registered with the default registry through promauto when
// the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "edublog"
	subsystem = "client"
)

// ── Request metrics ───────────────────────────────────────────────────────────

// RequestsTotal counts API requests by outcome.
// Labels:
//   - method: HTTP method
//   - route: route template, e.g. "/posts/{id}" (never the concrete path)
//   - code: HTTP status code, or "network_error" when no response arrived
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total number of API requests issued, by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// RequestDuration measures the round trip of a single API request.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from send to fully read response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchTotal counts debounced search cycles that reached the API.
// Label:
//   - outcome: "applied", "stale" (superseded by a newer query) or "failed"
var SearchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "search_total",
		Help:      "Total number of debounced searches, labelled by outcome.",
	},
	[]string{"outcome"},
)

// SearchCoalescedTotal counts query changes that replaced a pending timer
// before it fired.
var SearchCoalescedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "search_coalesced_total",
		Help:      "Total number of query changes that cancelled a pending search timer.",
	},
)
