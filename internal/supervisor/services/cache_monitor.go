// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package services

import (
	"context"
	"time"

	"github.com/tomtom215/poimap/internal/metrics"
)

// Sizer reports how many entries a cache holds. *cache.Cache satisfies it.
type Sizer interface {
	Len() int
}

// CacheMonitorService samples a cache's size into the entity_cache_entries gauge.
type CacheMonitorService struct {
	name     string
	cache    Sizer
	interval time.Duration
}

// NewCacheMonitorService samples c every interval (default 15s) under name.
func NewCacheMonitorService(name string, c Sizer, interval time.Duration) *CacheMonitorService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &CacheMonitorService{name: name, cache: c, interval: interval}
}

// Serve implements suture.Service. It samples once immediately, then on every tick.
func (s *CacheMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		metrics.RecordCacheEntries(s.name, s.cache.Len())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String names the service in suture events.
func (s *CacheMonitorService) String() string {
	return "cache-monitor-" + s.name
}
