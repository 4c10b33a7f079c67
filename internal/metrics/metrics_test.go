package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := New()

	m.RecordRequest("search", "ok", 200*time.Millisecond)
	m.RecordRequest("search", "ok", 300*time.Millisecond)
	m.RecordRequest("search", "api_limit", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("search", "ok")); got != 2 {
		t.Errorf("requests{search,ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("search", "api_limit")); got != 1 {
		t.Errorf("requests{search,api_limit} = %v, want 1", got)
	}
}

func TestMetrics_CacheAndGauges(t *testing.T) {
	m := New()

	m.RecordCacheHit("hl")
	m.RecordCacheMiss("hl")
	m.RecordCacheMiss("gl")
	m.SetRemainingRequests(17)
	m.RecordRateLimitHit()
	m.IncRequestsInFlight()
	m.IncRequestsInFlight()
	m.DecRequestsInFlight()

	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("hl")); got != 1 {
		t.Errorf("cache hits{hl} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("gl")); got != 1 {
		t.Errorf("cache misses{gl} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RemainingRequests); got != 17 {
		t.Errorf("remaining = %v, want 17", got)
	}
	if got := testutil.ToFloat64(m.RateLimitHitsTotal); got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RequestsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
}

func TestMetrics_IndependentInstances(t *testing.T) {
	a := New()
	b := New()

	a.RecordRateLimitHit()

	if got := testutil.ToFloat64(b.RateLimitHitsTotal); got != 0 {
		t.Errorf("second instance rate limit hits = %v, want 0", got)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.RecordRequest("status", "ok", time.Second)

	path := filepath.Join(t.TempDir(), "zenserp.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `zenserp_requests_total{endpoint="status",outcome="ok"} 1`) {
		t.Errorf("textfile missing request counter:\n%s", data)
	}
}
