// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package config provides centralized configuration management.

Configuration is layered with Koanf v2. Later sources override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, then config.yaml / config.yml in the
    working directory, then /etc/moviematch/
 3. Environment variables

# Configuration Structure

  - DatabaseConfig: DuckDB file, memory limit, pool, optional SQLite attach,
    sample seeding and MovieLens CSV import
  - ServerConfig: HTTP host, port and timeouts
  - SecurityConfig: CORS origins and rate limiting
  - LoggingConfig: zerolog level, format and caller info
  - RecommendConfig: top_n defaults and the missing title policy

# Environment Variables

Database:
  - DUCKDB_PATH: database file (default: moviematch.duckdb, ":memory:" allowed)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS, DUCKDB_MAX_OPEN_CONNS: 0 derives from NumCPU
  - DUCKDB_QUERY_TIMEOUT: per-query timeout (default: 30s)
  - SQLITE_PATH: attach an existing SQLite movies.db
  - SEED_SAMPLE_DATA: insert the example catalogue (default: false)
  - MOVIELENS_MOVIES_CSV, MOVIELENS_RATINGS_CSV: import on startup

Server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 5000)
  - HTTP_TIMEOUT, HTTP_REQUEST_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Security:
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Recommendation:
  - RECOMMEND_DEFAULT_TOP_N (default: 5), RECOMMEND_MAX_TOP_N (default: 100)
  - RECOMMEND_MISSING_TITLE_POLICY: skip or fail (default: skip)
  - RECOMMEND_SLOW_REQUEST_THRESHOLD (default: 2s)

# Example YAML

	database:
	  path: /data/moviematch.duckdb
	  sqlite_path: /data/movies.db
	server:
	  port: 8080
	recommend:
	  missing_title_policy: fail
*/
package config
