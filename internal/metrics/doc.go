// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package metrics provides Prometheus metrics for the POIMap service.

All collectors are registered on the default registry through promauto and are
exposed at /metrics by the API router.

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Entity cache:
  - entity_cache_hits_total{cache}
  - entity_cache_misses_total{cache}

Upstreams (upstream = "wikidata" | "wikipedia"):
  - upstream_requests_total{upstream, outcome}
    outcome: success, status_error, transport_error, decode_error,
    breaker_open, rate_limited, empty
  - upstream_request_duration_seconds{upstream}

Enrichment:
  - enrichment_skipped_total{reason}
  - enrichment_batch_size
  - enrichment_detail_unavailable_total

Circuit breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Auth:
  - auth_attempts_total{operation, result}
*/
package metrics
