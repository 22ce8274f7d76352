// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package main is the entry point for the Moviematch server.

Moviematch recommends movies by item-item collaborative filtering: for a
chosen movie it ranks every other rated movie by Pearson correlation weighted
by the number of shared raters, and serves the ranking over HTTP.

# Application Architecture

	RootSupervisor ("moviematch")
	├── DataSupervisor ("data-layer")
	│   └── Store monitor (DuckDB liveness gauge)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Recommendation engine: validated engine config
 4. Database: DuckDB, optionally seeded, loaded from MovieLens CSV, or
    attached to a SQLite file
 5. Supervisor Tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

# Configuration

	HTTP_PORT=5000                         # HTTP server port
	DUCKDB_PATH=moviematch.duckdb          # or :memory:
	SEED_SAMPLE_DATA=true                  # three-movie example catalogue
	MOVIELENS_MOVIES_CSV=movies.csv        # MovieLens import, with
	MOVIELENS_RATINGS_CSV=ratings.csv      # the matching ratings file
	SQLITE_PATH=movies.db                  # read an existing SQLite database
	RECOMMEND_MISSING_TITLE_POLICY=skip    # skip or fail
	LOG_LEVEL=info
	LOG_FORMAT=json

# Demo Mode

	./moviematch -demo

serves the example catalogue from memory without opening DuckDB.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server with a bounded graceful shutdown and the database is checkpointed and
closed.
*/
package main
