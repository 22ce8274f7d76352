// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
)

// ImportStats summarizes a MovieLens import.
type ImportStats struct {
	Movies   int64         `json:"movies"`
	Ratings  int64         `json:"ratings"`
	Duration time.Duration `json:"duration"`
}

// ImportMovieLens bulk-loads a MovieLens movies.csv (movieId,title,genres)
// and ratings.csv (userId,movieId,rating,timestamp) through read_csv_auto.
// Existing movie IDs are kept; ratings are appended.
func (db *DB) ImportMovieLens(ctx context.Context, moviesCSV, ratingsCSV string) (*ImportStats, error) {
	if db.attached {
		return nil, ErrReadOnly
	}
	for _, p := range []string{moviesCSV, ratingsCSV} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("movielens file: %w", err)
		}
	}

	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	moviesStmt := fmt.Sprintf(
		"INSERT OR IGNORE INTO movies (movie_id, title) SELECT movieId, title FROM read_csv_auto('%s', header = true)",
		escapeLiteral(moviesCSV))
	res, err := tx.ExecContext(ctx, moviesStmt)
	if err != nil {
		return nil, fmt.Errorf("import movies from %s: %w", moviesCSV, err)
	}
	movies, _ := res.RowsAffected() //nolint:errcheck // count is informational

	ratingsStmt := fmt.Sprintf(
		"INSERT INTO ratings (user_id, movie_id, rating) SELECT userId, movieId, rating FROM read_csv_auto('%s', header = true)",
		escapeLiteral(ratingsCSV))
	res, err = tx.ExecContext(ctx, ratingsStmt)
	if err != nil {
		return nil, fmt.Errorf("import ratings from %s: %w", ratingsCSV, err)
	}
	ratings, _ := res.RowsAffected() //nolint:errcheck // count is informational

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	stats := &ImportStats{Movies: movies, Ratings: ratings, Duration: time.Since(start)}
	logging.Info().
		Int64("movies", stats.Movies).
		Int64("ratings", stats.Ratings).
		Dur("duration", stats.Duration).
		Msg("MovieLens import complete")
	return stats, nil
}
