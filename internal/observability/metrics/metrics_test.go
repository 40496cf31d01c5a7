package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveRequest("lead_reply", "ok")
	m.ObserveRequest("lead_reply", "ok")
	m.ObserveRequest("lead_reply", "degraded")
	m.ObserveTemplateHit("harrison_updates")
	m.ObserveGatewayFailure()
	m.ObserveLatency("lead_reply", 0.42)

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("lead_reply", "ok")); got != 2 {
		t.Errorf("expected 2 ok requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("lead_reply", "degraded")); got != 1 {
		t.Errorf("expected 1 degraded request, got %v", got)
	}
	if got := testutil.ToFloat64(m.templateHits.WithLabelValues("harrison_updates")); got != 1 {
		t.Errorf("expected 1 template hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.gatewayFailures); got != 1 {
		t.Errorf("expected 1 gateway failure, got %v", got)
	}
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveRequest("lead_reply", "ok")
	m.ObserveTemplateHit("harrison_updates")
	m.ObserveGatewayFailure()
	m.ObserveLatency("lead_reply", 0.1)
}

func TestIntakeMetricsRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewIntakeMetrics(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	NewIntakeMetrics(reg)
}
