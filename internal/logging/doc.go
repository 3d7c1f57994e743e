// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

// Package logging provides the zerolog-based structured logger used across POIMap.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Warn().Str("wikidata_id", id).Msg("Skipping POI")
//
// # Configuration
//
// The logging section of the service config maps to Config:
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  true, false (default: false)
//
// Always terminate event chains with Msg or Send, otherwise nothing is written.
//
// # slog bridge
//
// NewSlogLogger exposes the same stream as an *slog.Logger for sutureslog.
package logging
