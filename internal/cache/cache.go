// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package cache

import (
	"sync"
	"time"
)

// Clock supplies the current time. Tests substitute a fake to step past the TTL.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Entry is a stored value and the time it was stored.
type Entry[V any] struct {
	Data     V
	StoredAt time.Time
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Stale     int64 `json:"stale"`
	TotalKeys int64 `json:"total_keys"`
}

// Observer is notified of every lookup outcome. Used to feed Prometheus counters.
type Observer interface {
	CacheHit(name string)
	CacheMiss(name string)
}

// Cache is a thread-safe TTL memo.
//
// Expiry is checked lazily on Get and nothing is ever swept: an expired entry
// stays in the map, is reported as a miss, and is replaced by the next Set.
// There is no size bound and no delete API.
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]Entry[V]
	ttl      time.Duration
	clock    Clock
	name     string
	observer Observer

	statsMu sync.Mutex
	stats   Stats
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithClock overrides the time source.
func WithClock[V any](clock Clock) Option[V] {
	return func(c *Cache[V]) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithObserver reports hits and misses under name.
func WithObserver[V any](name string, observer Observer) Option[V] {
	return func(c *Cache[V]) {
		c.name = name
		c.observer = observer
	}
}

// New creates a cache whose entries are valid for ttl after being stored.
//
//	entities := cache.New[*wikidata.Document](30 * time.Minute)
//	entities.Set("Q10288", doc)
//	if doc, ok := entities.Get("Q10288"); ok {
//	    // fresh
//	}
func New[V any](ttl time.Duration, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		clock:   SystemClock,
		name:    "default",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if it was stored less than TTL ago.
// An expired entry is a miss and is left in place.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss(false)
		var zero V
		return zero, false
	}

	if c.clock.Now().Sub(entry.StoredAt) >= c.ttl {
		c.recordMiss(true)
		var zero V
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores value for key stamped with the current time, replacing any prior entry.
// Concurrent Sets for the same key race harmlessly; the last one wins.
func (c *Cache[V]) Set(key string, value V) {
	now := c.clock.Now()

	c.mu.Lock()
	c.entries[key] = Entry[V]{Data: value, StoredAt: now}
	size := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = size
	c.statsMu.Unlock()
}

// Len returns the number of stored entries, fresh or stale.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// GetStats returns a copy of the counters.
func (c *Cache[V]) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of all lookups.
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache[V]) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()

	if c.observer != nil {
		c.observer.CacheHit(c.name)
	}
}

func (c *Cache[V]) recordMiss(stale bool) {
	c.statsMu.Lock()
	c.stats.Misses++
	if stale {
		c.stats.Stale++
	}
	c.statsMu.Unlock()

	if c.observer != nil {
		c.observer.CacheMiss(c.name)
	}
}
