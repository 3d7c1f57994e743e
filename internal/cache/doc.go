// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package cache provides the thread-safe in-memory TTL cache that memoizes raw
Wikidata entity documents.

# Semantics

  - An entry is valid iff now - storedAt < TTL.
  - Validity is checked lazily on Get. There is no cleanup goroutine; stale
    entries stay in memory until the next Set for the same key.
  - No size bound and no eviction. The POI catalog is small and fixed.
  - Cache lifetime equals process lifetime; there is no invalidation API.

# Time

The time source is an injected Clock so TTL behaviour is deterministic in tests:

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := cache.New[string](30*time.Minute, cache.WithClock[string](cache.ClockFunc(func() time.Time { return now })))

# Metrics

WithObserver attaches an Observer (internal/metrics implements one) that is told
about every hit and miss.
*/
package cache
