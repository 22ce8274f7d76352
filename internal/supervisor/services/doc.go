// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package services adapts Moviematch components to suture.Service.
//
//   - HTTPServerService: runs *http.Server with graceful shutdown
//   - StoreMonitorService: periodic store ping feeding the duckdb_up gauge
package services
