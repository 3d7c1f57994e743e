// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/cache"
	"github.com/tomtom215/poimap/internal/wikidata"
)

func getHealth(t *testing.T, h *Handler) HealthStatus {
	t.Helper()
	w := httptest.NewRecorder()
	testServer(t, h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return status
}

func TestHealth(t *testing.T) {
	entities := cache.New[*wikidata.Document](time.Hour)
	entities.Set("Q1", &wikidata.Document{})
	entities.Get("Q1")
	entities.Get("Q2")

	h := setupTestHandler(t, nil,
		WithCacheStats(entities),
		WithBreaker("wikidata", fakeBreaker("closed")),
		WithBreaker("wikipedia", fakeBreaker("half-open")),
	)
	status := getHealth(t, h)

	if status.Status != HealthStatusHealthy {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if status.Categories != 2 || status.POIs != 2 {
		t.Errorf("catalog counts = %d/%d", status.Categories, status.POIs)
	}
	if status.Cache == nil || status.Cache.Entries != 1 || status.Cache.Hits != 1 || status.Cache.Misses != 1 {
		t.Errorf("cache = %+v", status.Cache)
	}
	if status.Breakers["wikidata"] != "closed" || status.Breakers["wikipedia"] != "half-open" {
		t.Errorf("breakers = %v", status.Breakers)
	}
}

func TestHealthDegradedWhenBreakerOpen(t *testing.T) {
	h := setupTestHandler(t, nil, WithBreaker("wikidata", fakeBreaker("open")))
	if status := getHealth(t, h); status.Status != HealthStatusDegraded {
		t.Errorf("status = %q, want degraded", status.Status)
	}
}

func TestHealthWithoutOptionalSources(t *testing.T) {
	h := setupTestHandler(t, nil, WithBreaker("nil", nil))
	status := getHealth(t, h)
	if status.Cache != nil || len(status.Breakers) != 0 {
		t.Errorf("status = %+v, want no cache and no breakers", status)
	}
}

func TestHealthLiveAndMetrics(t *testing.T) {
	srv := testServer(t, setupTestHandler(t, nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"alive":true`) {
		t.Errorf("live = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "api_requests_total") {
		t.Error("metrics output missing API request counter")
	}
}
