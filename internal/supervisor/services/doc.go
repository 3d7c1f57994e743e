// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package services provides suture.Service wrappers for POIMap components.

Each wrapper implements suture's context-aware Serve and names itself via
fmt.Stringer for supervisor events:

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - CacheMonitorService: samples entity cache size into a gauge

Returning an error from Serve asks the supervisor to restart the service.
Returning ctx.Err() after cancellation is a clean stop.
*/
package services
