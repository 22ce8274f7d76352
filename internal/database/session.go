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
	"time"

	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// Session is a request-scoped read handle pinned to one pooled connection.
// It implements recommend.Store. A Session is not safe for concurrent use;
// each request acquires its own.
type Session struct {
	db     *DB
	conn   *sql.Conn
	closed bool
}

var _ recommend.Store = (*Session)(nil)

// Acquire pins a pooled connection for the duration of a request.
// The caller must Close the session.
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	metrics.TrackSession(true)
	return &Session{db: db, conn: conn}, nil
}

// Close returns the connection to the pool. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	metrics.TrackSession(false)
	return s.conn.Close()
}

// WithStore acquires a session, runs fn against it, and releases the
// session afterwards, also when fn fails or panics.
func (db *DB) WithStore(ctx context.Context, fn func(recommend.Store) error) error {
	session, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer closeWithLog(session, "session")

	return fn(session)
}

// MovieTitle implements recommend.Store.
func (s *Session) MovieTitle(ctx context.Context, movieID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ctx, cancel := s.db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var title string
	err := s.conn.QueryRowContext(ctx, s.db.queries.movieTitle, movieID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("movie_title", tableMovies, time.Since(start), nil)
		return "", fmt.Errorf("movie %d: %w", movieID, recommend.ErrMovieNotFound)
	}
	metrics.RecordDBQuery("movie_title", tableMovies, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("query title of movie %d: %w", movieID, err)
	}
	return title, nil
}

// RatedMovieIDs implements recommend.Store.
func (s *Session) RatedMovieIDs(ctx context.Context, excludeID int) (ids []int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := s.db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("rated_movie_ids", tableRatings, time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx, s.db.queries.ratedMovieIDs, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query rated movies: %w", err)
	}
	defer closeQuietly(rows)

	ids = []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan movie id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rated movies: %w", err)
	}
	return ids, nil
}

// CoRatings implements recommend.Store. Pairs are ordered by user ID.
func (s *Session) CoRatings(ctx context.Context, movieA, movieB int) (pairs []recommend.RatingPair, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := s.db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("co_ratings", tableRatings, time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx, s.db.queries.coRatings, movieA, movieB)
	if err != nil {
		return nil, fmt.Errorf("query co-ratings of %d and %d: %w", movieA, movieB, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var p recommend.RatingPair
		if err := rows.Scan(&p.First, &p.Second); err != nil {
			return nil, fmt.Errorf("scan rating pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate co-ratings: %w", err)
	}
	return pairs, nil
}
