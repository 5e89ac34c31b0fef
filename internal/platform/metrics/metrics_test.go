package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Decision("pass")
	m.Decision("pass")
	m.Decision("login_redirect")
	m.Refresh("denied")
	m.LocaleSource("claims")

	if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues("pass")); got != 2 {
		t.Fatalf("pass = %v", got)
	}
	if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues("login_redirect")); got != 1 {
		t.Fatalf("login_redirect = %v", got)
	}
	if got := testutil.ToFloat64(m.RefreshOutcomes.WithLabelValues("denied")); got != 1 {
		t.Fatalf("denied = %v", got)
	}
	if got := testutil.ToFloat64(m.LocaleSources.WithLabelValues("claims")); got != 1 {
		t.Fatalf("claims = %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.Decision("pass")
	m.Refresh("established")
	m.LocaleSource("default")
}
