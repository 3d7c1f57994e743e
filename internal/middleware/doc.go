// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

// Package middleware provides HTTP instrumentation shared by the API router.
//
// PrometheusMetrics labels requests by chi route pattern and status code:
//
//	r := chi.NewRouter()
//	r.Use(middleware.PrometheusMetrics)
package middleware
