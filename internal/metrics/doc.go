// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are safe for concurrent use.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type (timeout, canceled, query)
  - duckdb_sessions_active: Open request-scoped sessions (gauge)

API Metrics:
  - api_requests_total: Total requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limited requests (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommend_requests_total: Requests by outcome (counter)
    Labels: outcome (ok, not_found, invalid, data_integrity, canceled, error)
  - recommend_duration_seconds: Computation time (histogram)
  - recommend_candidates: Candidates scored per request (histogram)
  - recommend_similarity_computations_total: Pairwise computations (counter)
    Labels: result (defined, sentinel)
  - recommend_missing_titles_total: Candidates skipped for a missing title (counter)

# Usage Example

	start := time.Now()
	err := row.Scan(&title)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)

# Example PromQL

	# Share of similarity computations with no signal
	sum(rate(recommend_similarity_computations_total{result="sentinel"}[5m]))
	  / sum(rate(recommend_similarity_computations_total[5m]))

	# 95th percentile recommendation latency
	histogram_quantile(0.95, rate(recommend_duration_seconds_bucket[5m]))
*/
package metrics
