package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	metrics.Observe("GET", "/api/clothing", 200, 30*time.Millisecond)
	metrics.Observe("GET", "/api/clothing", 200, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	var counter *dto.Metric
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			for _, m := range mf.GetMetric() {
				counter = m
			}
		}
	}
	if counter == nil {
		t.Fatalf("http_requests_total not exported")
	}
	if got := counter.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %f", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	metrics := NewHTTPMetrics(nil)
	metrics.Observe("GET", "/", 200, time.Millisecond)

	var empty *HTTPMetrics
	empty.Observe("GET", "/", 200, time.Millisecond)
}
