// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"net/http"
	"time"
)

// Health status values.
const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status     string            `json:"status"`
	Uptime     float64           `json:"uptime_seconds"`
	Categories int               `json:"categories"`
	POIs       int               `json:"pois"`
	Cache      *CacheHealth      `json:"cache,omitempty"`
	Breakers   map[string]string `json:"breakers"`
	Timestamp  time.Time         `json:"timestamp"`
}

// CacheHealth summarizes entity cache activity.
type CacheHealth struct {
	Entries int64   `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Stale   int64   `json:"stale"`
	HitRate float64 `json:"hit_rate"`
}

// Health reports liveness, cache statistics and upstream breaker states.
//
// The response is always 200. Status is degraded while any breaker is open,
// since detail requests will then fail fast with 502.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:     HealthStatusHealthy,
		Uptime:     time.Since(h.startTime).Seconds(),
		Categories: len(h.catalog.Categories()),
		POIs:       h.catalog.Size(),
		Breakers:   make(map[string]string, len(h.breakers)),
		Timestamp:  time.Now(),
	}

	if h.cacheStats != nil {
		stats := h.cacheStats.GetStats()
		status.Cache = &CacheHealth{
			Entries: stats.TotalKeys,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			Stale:   stats.Stale,
			HitRate: h.cacheStats.HitRate(),
		}
	}

	for name, b := range h.breakers {
		state := b.BreakerState()
		status.Breakers[name] = state
		if state == "open" {
			status.Status = HealthStatusDegraded
		}
	}

	WriteJSON(w, r, status)
}

// HealthLive returns 200 while the process is alive, regardless of upstreams.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}
