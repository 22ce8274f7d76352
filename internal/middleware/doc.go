// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package middleware provides HTTP middleware for the Moviematch server.
//
// All middleware has the chi signature func(http.Handler) http.Handler:
//
//   - RequestID: assigns X-Request-ID and seeds the logging context
//   - PrometheusMetrics: request count, latency, and in-flight gauge,
//     labelled by chi route pattern
//   - AccessLog: one zerolog entry per request
//
// The router installs them in that order so the access log and metrics see
// the request ID.
package middleware
