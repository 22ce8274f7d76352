// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package logging provides centralized zerolog-based structured logging.
//
// A global logger is configured once at startup with Init and read through
// the package-level helpers. JSON output is the default; console output is
// meant for development.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", ":5000").Msg("server listening")
//	logging.Err(err).Msg("database ping failed")
//
// # Request Context
//
// The HTTP request ID middleware stores the request ID in the context.
// Ctx picks it up so handler logs can be joined with the access log:
//
//	logging.Ctx(r.Context()).Warn().Int("movie_id", id).Msg("movie not found")
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog for libraries such as sutureslog
// that accept an *slog.Logger.
//
// # Configuration
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
