// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package supervisor runs POIMap's long-lived services under a suture v4 tree.

	poimap (root)
	├── api-layer      HTTP server
	└── monitor-layer  cache size sampler

Events are logged through sutureslog into the zerolog-backed slog adapter:

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, 10*time.Second))
	err := tree.Serve(ctx)

A service that keeps failing is backed off by FailureBackoff once
FailureThreshold is exceeded; failures decay at FailureDecay per second.
*/
package supervisor
