// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "status_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeRejected  = "breaker_open"
	OutcomeThrottled = "rate_limited"
	OutcomeEmpty     = "empty"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Entity Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_cache_hits_total",
			Help: "Total number of entity cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_cache_misses_total",
			Help: "Total number of entity cache misses (absent or expired)",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "entity_cache_entries",
			Help: "Entries held by the entity cache, fresh or stale",
		},
		[]string{"cache"},
	)

	// Upstream Metrics (Wikidata entity, Wikipedia summary)
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of outbound upstream requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		},
		[]string{"upstream"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound upstream requests by outcome",
		},
		[]string{"upstream", "outcome"},
	)

	// Enrichment Metrics
	EnrichmentSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_skipped_total",
			Help: "POIs dropped from listing output",
		},
		[]string{"reason"}, // fetch_unavailable, missing_coordinates, panic
	)

	EnrichmentBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_batch_size",
			Help:    "Number of POIs per listing enrichment",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	EnrichmentDetailUnavailable = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_detail_unavailable_total",
			Help: "Detail requests that failed because the entity could not be fetched",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"operation", "result"}, // operation: login, signup, refresh
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by httprate.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordUpstream records one outbound call and its outcome.
func RecordUpstream(upstream, outcome string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(upstream, outcome).Inc()
	if duration > 0 {
		UpstreamRequestDuration.WithLabelValues(upstream).Observe(duration.Seconds())
	}
}

// RecordEnrichmentSkip records a POI dropped from a listing.
func RecordEnrichmentSkip(reason string) {
	EnrichmentSkipped.WithLabelValues(reason).Inc()
}

// RecordEnrichmentBatch records the size of a listing enrichment.
func RecordEnrichmentBatch(size int) {
	EnrichmentBatchSize.Observe(float64(size))
}

// RecordDetailUnavailable records a detail request answered with 502.
func RecordDetailUnavailable() {
	EnrichmentDetailUnavailable.Inc()
}

// RecordAuthAttempt records a login, signup or refresh outcome.
func RecordAuthAttempt(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}

// RecordCacheEntries sets the sampled entry count of a cache.
func RecordCacheEntries(name string, entries int) {
	CacheEntries.WithLabelValues(name).Set(float64(entries))
}

// CacheObserver feeds cache lookups into the entity cache counters.
// It satisfies cache.Observer.
type CacheObserver struct{}

// CacheHit implements cache.Observer.
func (CacheObserver) CacheHit(name string) {
	CacheHits.WithLabelValues(name).Inc()
}

// CacheMiss implements cache.Observer.
func (CacheObserver) CacheMiss(name string) {
	CacheMisses.WithLabelValues(name).Inc()
}
