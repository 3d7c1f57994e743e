// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count and sum from a Prometheus histogram
func histogramCount(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/pois/{id}", "200"))

	RecordAPIRequest("GET", "/pois/{id}", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/pois/{id}", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - start; got != 2 {
		t.Errorf("active requests after two increments = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestRecordUpstream(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		outcome  string
		duration time.Duration
	}{
		{"wikidata success", "wikidata", OutcomeSuccess, 120 * time.Millisecond},
		{"wikidata status", "wikidata", OutcomeStatus, 40 * time.Millisecond},
		{"wikipedia rejected", "wikipedia", OutcomeRejected, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := UpstreamRequests.WithLabelValues(tt.upstream, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordUpstream(tt.upstream, tt.outcome, tt.duration)

			if delta := testutil.ToFloat64(counter) - before; delta != 1 {
				t.Errorf("upstream_requests_total delta = %v, want 1", delta)
			}
		})
	}
}

func TestRecordEnrichmentSkip(t *testing.T) {
	for _, reason := range []string{"fetch_unavailable", "missing_coordinates", "panic"} {
		before := testutil.ToFloat64(EnrichmentSkipped.WithLabelValues(reason))
		RecordEnrichmentSkip(reason)
		if delta := testutil.ToFloat64(EnrichmentSkipped.WithLabelValues(reason)) - before; delta != 1 {
			t.Errorf("enrichment_skipped_total{reason=%q} delta = %v, want 1", reason, delta)
		}
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	okBefore := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success"))
	failBefore := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure"))

	RecordAuthAttempt("login", true)
	RecordAuthAttempt("login", false)
	RecordAuthAttempt("login", false)

	if d := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success")) - okBefore; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure")) - failBefore; d != 2 {
		t.Errorf("failure delta = %v, want 2", d)
	}
}

func TestCacheObserver(t *testing.T) {
	var obs CacheObserver
	hitBefore := testutil.ToFloat64(CacheHits.WithLabelValues("entity"))
	missBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("entity"))

	obs.CacheHit("entity")
	obs.CacheMiss("entity")
	obs.CacheMiss("entity")

	if d := testutil.ToFloat64(CacheHits.WithLabelValues("entity")) - hitBefore; d != 1 {
		t.Errorf("hits delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(CacheMisses.WithLabelValues("entity")) - missBefore; d != 2 {
		t.Errorf("misses delta = %v, want 2", d)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	const cbName = "test-breaker"

	CircuitBreakerState.WithLabelValues(cbName).Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open").Inc()
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open")); got < 1 {
		t.Errorf("transitions = %v, want >= 1", got)
	}
}

func TestRecordEnrichmentBatch(t *testing.T) {
	countBefore, sumBefore := histogramCount(t, EnrichmentBatchSize)

	RecordEnrichmentBatch(4)
	RecordEnrichmentBatch(0)

	count, sum := histogramCount(t, EnrichmentBatchSize)
	if count-countBefore != 2 {
		t.Errorf("sample count delta = %d, want 2", count-countBefore)
	}
	if sum-sumBefore != 4 {
		t.Errorf("sample sum delta = %v, want 4", sum-sumBefore)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordEnrichmentBatch(3)
	RecordDetailUnavailable()

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem for %s: %s", p.Metric, p.Text)
	}
}
