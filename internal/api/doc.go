// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package api provides the HTTP JSON API consumed by the POIMap mobile client.

Routes:

	GET  /about                  team members
	POST /api/auth/login         email + password -> {accessToken, refreshToken}
	POST /api/auth/signup        register, then same as login
	POST /api/auth/refresh       refresh token -> new pair
	GET  /pois/categories        categories with POI counts (bearer)
	GET  /pois/categories/{id}   enriched POIs that have coordinates (bearer)
	GET  /pois/{id}              full POI view with gallery and facts (bearer)
	GET  /health                 uptime, cache stats, breaker states
	GET  /health/live            process liveness
	GET  /metrics                Prometheus exposition

Success bodies are bare JSON. Errors use APIResponse with a machine code and a
top-level detail string:

	{"success":false,"detail":"POI not found","error":{"code":"NOT_FOUND","message":"POI not found","request_id":"..."}}

Middleware order: request ID, real IP, panic recovery, Prometheus, compression,
CORS; then per-IP rate limiting (stricter on /api/auth) and security headers.

Usage Example:

	handler := api.NewHandler(cat, enricher, jwtManager, accounts,
	    api.WithCacheStats(entityCache),
	    api.WithBreaker("wikidata", fetcher))
	router := api.NewRouter(handler, api.NewChiMiddlewareFromServer(&cfg.Server))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}

Thread Safety:

Handlers hold no per-request state. The catalog is immutable and the entity
cache, user stores and breakers synchronize internally.
*/
package api
