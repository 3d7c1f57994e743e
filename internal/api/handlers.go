// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"context"
	"time"

	"github.com/tomtom215/poimap/internal/auth"
	"github.com/tomtom215/poimap/internal/cache"
	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/enrich"
)

// POIEnricher resolves catalog entries against Wikidata. *enrich.Enricher satisfies it.
type POIEnricher interface {
	EnrichCategory(ctx context.Context, pois []catalog.POI) []enrich.Listed
	EnrichDetail(ctx context.Context, poi catalog.POI, extraImages []string) (*enrich.Detail, error)
}

// CacheStatser reports entity cache activity for /health.
type CacheStatser interface {
	GetStats() cache.Stats
	HitRate() float64
}

// BreakerStater reports an upstream circuit breaker state for /health.
type BreakerStater interface {
	BreakerState() string
}

var _ POIEnricher = (*enrich.Enricher)(nil)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_auth.go: login, signup, refresh
//   - handlers_pois.go: about, categories, category listing, POI detail
//   - handlers_health.go: health
type Handler struct {
	catalog    *catalog.Catalog
	enricher   POIEnricher
	jwtManager *auth.JWTManager
	accounts   *auth.Accounts
	startTime  time.Time

	cacheStats CacheStatser
	breakers   map[string]BreakerStater
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithCacheStats exposes entity cache statistics on /health.
func WithCacheStats(stats CacheStatser) HandlerOption {
	return func(h *Handler) {
		h.cacheStats = stats
	}
}

// WithBreaker exposes an upstream breaker state on /health under name.
func WithBreaker(name string, b BreakerStater) HandlerOption {
	return func(h *Handler) {
		if b != nil {
			h.breakers[name] = b
		}
	}
}

// NewHandler creates the API handler.
//
// Example:
//
//	handler := api.NewHandler(cat, enricher, jwtManager, accounts,
//	    api.WithCacheStats(entityCache), api.WithBreaker("wikidata", fetcher))
//	router := api.NewRouter(handler, chiMiddleware)
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(cat *catalog.Catalog, enricher POIEnricher, jwtManager *auth.JWTManager, accounts *auth.Accounts, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog:    cat,
		enricher:   enricher,
		jwtManager: jwtManager,
		accounts:   accounts,
		startTime:  time.Now(),
		breakers:   make(map[string]BreakerStater),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// JWTManager returns the token manager used by the handler.
func (h *Handler) JWTManager() *auth.JWTManager {
	return h.jwtManager
}
