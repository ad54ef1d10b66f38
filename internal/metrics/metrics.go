// Package metrics holds the prometheus collectors for the journal service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "journal"

// Result label values.
const (
	ResultAllow          = "allow"
	ResultDeny           = "deny"
	ResultApplied        = "applied"
	ResultAlreadyHandled = "already_handled"
	ResultSent           = "sent"
	ResultFailed         = "failed"
)

type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authorization decisions by check and result
	AuthzDecisions *prometheus.CounterVec

	// Entry moderation transitions
	EntryTransitions *prometheus.CounterVec

	// Invite lifecycle
	InvitesIssued   *prometheus.CounterVec
	InvitesRedeemed prometheus.Counter

	// Notification delivery by channel and result
	Notifications *prometheus.CounterVec

	// Primary organization cache
	CacheLookups *prometheus.CounterVec
}

// New registers every collector on reg. Passing a fresh registry per test
// keeps counters isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthzDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authz_decisions_total",
				Help:      "Authorization decisions by check and result",
			},
			[]string{"check", "result"},
		),
		EntryTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_transitions_total",
				Help:      "Entry status transitions by source, target and result",
			},
			[]string{"from", "to", "result"},
		),
		InvitesIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invites_issued_total",
				Help:      "Invites issued by delivery channel",
			},
			[]string{"delivery"},
		),
		InvitesRedeemed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invites_redeemed_total",
				Help:      "Invites successfully redeemed",
			},
		),
		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Notification attempts by channel and result",
			},
			[]string{"channel", "result"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "primary_org_cache_lookups_total",
				Help:      "Primary organization cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Result maps a boolean decision onto allow/deny.
func Result(allowed bool) string {
	if allowed {
		return ResultAllow
	}
	return ResultDeny
}
