// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"fmt"
)

// Table names
const (
	tableMovies  = "movies"
	tableRatings = "ratings"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		movie_id INTEGER PRIMARY KEY,
		title VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		rating DOUBLE NOT NULL
	)`,
}

// createTables creates the local movies and ratings tables
func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// queries holds the read statements for one catalog.
type queries struct {
	movieTitle    string
	ratedMovieIDs string
	coRatings     string
	countMovies   string
	countRatings  string
}

// newQueries builds the statements against the given catalog prefix,
// e.g. "" for the local schema or "moviesdb." for an attached file.
func newQueries(prefix string) queries {
	movies := prefix + tableMovies
	ratings := prefix + tableRatings
	return queries{
		movieTitle:    "SELECT title FROM " + movies + " WHERE movie_id = ?",
		ratedMovieIDs: "SELECT DISTINCT movie_id FROM " + ratings + " WHERE movie_id != ? ORDER BY movie_id",
		coRatings: "SELECT r1.rating, r2.rating FROM " + ratings + " r1 JOIN " + ratings +
			" r2 ON r1.user_id = r2.user_id WHERE r1.movie_id = ? AND r2.movie_id = ? ORDER BY r1.user_id",
		countMovies:  "SELECT COUNT(*) FROM " + movies,
		countRatings: "SELECT COUNT(*) FROM " + ratings,
	}
}
