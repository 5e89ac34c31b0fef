// Package metrics registers Prometheus metrics for the edge gate
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the edge service
type Metrics struct {
	GateDecisions   *prometheus.CounterVec
	RefreshOutcomes *prometheus.CounterVec
	LocaleSources   *prometheus.CounterVec
}

// New creates and registers all edge metrics on the given registerer
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dmphub_edge_gate_decisions_total",
			Help: "Gate outcomes per request (pass, login_redirect, self_redirect, locale_redirect)",
		}, []string{"outcome"}),
		RefreshOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dmphub_edge_refresh_outcomes_total",
			Help: "Token refresh outcomes (established, denied, indeterminate)",
		}, []string{"outcome"}),
		LocaleSources: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dmphub_edge_locale_sources_total",
			Help: "Which fallback step produced the locale (claims, header, default)",
		}, []string{"source"}),
	}
}

// Decision records a gate outcome
func (m *Metrics) Decision(outcome string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(outcome).Inc()
}

// Refresh records a refresh outcome
func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.RefreshOutcomes.WithLabelValues(outcome).Inc()
}

// LocaleSource records which resolver step answered
func (m *Metrics) LocaleSource(source string) {
	if m == nil {
		return
	}
	m.LocaleSources.WithLabelValues(source).Inc()
}
