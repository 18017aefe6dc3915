package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClientMetricsCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.IncSuccess("load_cart")
	m.IncSuccess("load_cart")
	m.IncFailure("submit_order", "TRANSIENT_ERROR")
	m.ObserveDuration("load_cart", 25*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("load_cart")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("submit_order", "TRANSIENT_ERROR")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestClientMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *ClientMetrics
	m.IncSuccess("load_cart")
	m.IncFailure("load_cart", "INTERNAL_ERROR")
	m.ObserveDuration("load_cart", time.Second)

	empty := NewClientMetrics(nil)
	empty.IncSuccess("load_cart")
}
