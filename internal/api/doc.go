// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package api provides the HTTP surface of Moviematch using the Chi router.

Routes:

	GET  /                                             HTML form
	POST /                                             form submit (HTML or JSON)
	GET  /static/app.js                                client script
	GET  /api/v1/movies/{movieID}/recommendations      ?top_n=N
	GET  /api/v1/movies/{movieID}/similarity/{otherID}
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

POST / answers a client that sends Accept: application/json with

	{"recommendations": [["B", 2], ["C", -2]]}

and re-renders the page for browsers. The /api/v1 routes use the APIResponse
envelope.

Error mapping:

	malformed id or top_n      400 VALIDATION_ERROR
	unknown movie              404 NOT_FOUND
	rated movie with no title  500 DATA_INTEGRITY_ERROR (fail policy only)
	request timeout            503 REQUEST_TIMEOUT
	anything else              500 INTERNAL_ERROR

Each request computes against its own store obtained from StoreOpener,
bounded by the configured request timeout.

Example:

	handler, err := api.NewHandler(engine, db, cfg.Server.RequestTimeout)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
