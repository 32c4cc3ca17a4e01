package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	// second call must not re-register (promauto panics on duplicates)
	InitMetrics()

	if SalesRegisteredTotal == nil || HTTPRequestsTotal == nil {
		t.Fatal("collectors not initialized")
	}
}

func TestSaleCounters(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(SalesRegisteredTotal)
	SalesRegisteredTotal.Inc()
	after := testutil.ToFloat64(SalesRegisteredTotal)

	if after != before+1 {
		t.Errorf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestHTTPRequestsTotal_Labels(t *testing.T) {
	InitMetrics()

	HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/vendas", "200").Inc()
	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/vendas", "200"))

	if got < 1 {
		t.Errorf("expected labeled counter >= 1, got %v", got)
	}
}
