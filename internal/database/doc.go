// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package database provides the DuckDB-backed ratings store.

The schema is two tables:

	movies(movie_id INTEGER PRIMARY KEY, title VARCHAR NOT NULL)
	ratings(user_id INTEGER, movie_id INTEGER, rating DOUBLE)

Reads are request-scoped. A handler acquires a Session, which pins one
pooled connection and implements recommend.Store, and releases it when the
request finishes:

	err := db.WithStore(ctx, func(store recommend.Store) error {
		resp, err = engine.Recommend(ctx, store, req)
		return err
	})

An existing SQLite movies/ratings file can be attached read-only with the
sqlite_scanner extension by setting database.sqlite_path. Writes
(SeedSampleData, InsertMovies, InsertRatings, ImportMovieLens) then fail
with ErrReadOnly.

Every read runs under database.query_timeout and is recorded in the
moviematch_db_query_* metrics.
*/
package database
