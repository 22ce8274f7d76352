// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package supervisor runs the Moviematch services under a suture v4 tree.

	moviematch (root)
	├── data-layer
	│   └── store-monitor
	└── api-layer
	    └── http-server

Failing services are restarted with backoff. Canceling the context passed
to Serve stops every service; the HTTP server shuts down gracefully within
its own timeout.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewStoreMonitorService(db, 30*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
