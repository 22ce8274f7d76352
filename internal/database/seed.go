// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// ErrReadOnly is returned by write operations while a SQLite file is attached.
var ErrReadOnly = errors.New("database is attached read-only")

// SeedSampleData inserts the example catalogue when the movies table is
// empty. It reports whether anything was written.
func (db *DB) SeedSampleData(ctx context.Context) (bool, error) {
	if db.attached {
		return false, ErrReadOnly
	}

	counts, err := db.Counts(ctx)
	if err != nil {
		return false, err
	}
	if counts.Movies > 0 {
		logging.Debug().Int64("movies", counts.Movies).Msg("Movies table not empty, skipping seed")
		return false, nil
	}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertMovies(ctx, tx, recommend.SampleMovies()); err != nil {
			return err
		}
		return insertRatings(ctx, tx, recommend.SampleRatings())
	})
	if err != nil {
		return false, fmt.Errorf("seed sample data: %w", err)
	}

	logging.Info().Msg("Seeded sample data")
	return true, nil
}

// InsertMovies upserts movies in a single transaction.
func (db *DB) InsertMovies(ctx context.Context, movies []recommend.Movie) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return insertMovies(ctx, tx, movies)
	})
}

// InsertRatings appends ratings in a single transaction.
func (db *DB) InsertRatings(ctx context.Context, ratings []recommend.Rating) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return insertRatings(ctx, tx, ratings)
	})
}

func insertMovies(ctx context.Context, tx *sql.Tx, movies []recommend.Movie) error {
	return execPrepared(ctx, tx, "INSERT OR REPLACE INTO movies (movie_id, title) VALUES (?, ?)", func(stmt *sql.Stmt) error {
		for _, m := range movies {
			if _, err := stmt.ExecContext(ctx, m.ID, m.Title); err != nil {
				return fmt.Errorf("insert movie %d: %w", m.ID, err)
			}
		}
		return nil
	})
}

func insertRatings(ctx context.Context, tx *sql.Tx, ratings []recommend.Rating) error {
	return execPrepared(ctx, tx, "INSERT INTO ratings (user_id, movie_id, rating) VALUES (?, ?, ?)", func(stmt *sql.Stmt) error {
		for _, r := range ratings {
			if _, err := stmt.ExecContext(ctx, r.UserID, r.MovieID, r.Value); err != nil {
				return fmt.Errorf("insert rating (%d, %d): %w", r.UserID, r.MovieID, err)
			}
		}
		return nil
	})
}

// withTx runs fn inside a transaction and commits when it succeeds.
func (db *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	if db.attached {
		return ErrReadOnly
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// execPrepared prepares query on tx and hands the statement to fn.
func execPrepared(ctx context.Context, tx *sql.Tx, query string, fn func(*sql.Stmt) error) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer closeQuietly(stmt)
	return fn(stmt)
}

// TableCounts is the row count of each table.
type TableCounts struct {
	Movies  int64 `json:"movies"`
	Ratings int64 `json:"ratings"`
}

// Counts returns the row counts of the active catalog.
func (db *DB) Counts(ctx context.Context) (TableCounts, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	var c TableCounts
	if err := db.conn.QueryRowContext(ctx, db.queries.countMovies).Scan(&c.Movies); err != nil {
		return c, fmt.Errorf("count movies: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, db.queries.countRatings).Scan(&c.Ratings); err != nil {
		return c, fmt.Errorf("count ratings: %w", err)
	}
	return c, nil
}
