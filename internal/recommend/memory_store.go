// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// MemoryStore is an in-memory Store. It is read-only after construction
// and safe for concurrent use. Used by tests and the -demo mode.
type MemoryStore struct {
	titles map[int]string

	// byMovie maps movie -> user -> rating. When a user rated a movie more
	// than once the last rating wins.
	byMovie map[int]map[int]float64
	rated   []int
}

// NewMemoryStore builds a store from a catalogue and a rating set.
// Ratings may reference movies absent from the catalogue.
func NewMemoryStore(movies []Movie, ratings []Rating) *MemoryStore {
	s := &MemoryStore{
		titles:  make(map[int]string, len(movies)),
		byMovie: make(map[int]map[int]float64),
	}
	for _, m := range movies {
		s.titles[m.ID] = m.Title
	}
	for _, r := range ratings {
		users, ok := s.byMovie[r.MovieID]
		if !ok {
			users = make(map[int]float64)
			s.byMovie[r.MovieID] = users
			s.rated = append(s.rated, r.MovieID)
		}
		users[r.UserID] = r.Value
	}
	sort.Ints(s.rated)
	return s
}

// MovieTitle implements Store.
func (s *MemoryStore) MovieTitle(ctx context.Context, movieID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	title, ok := s.titles[movieID]
	if !ok {
		return "", fmt.Errorf("movie %d: %w", movieID, ErrMovieNotFound)
	}
	return title, nil
}

// RatedMovieIDs implements Store.
func (s *MemoryStore) RatedMovieIDs(ctx context.Context, excludeID int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(s.rated))
	for _, id := range s.rated {
		if id != excludeID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CoRatings implements Store. Pairs are ordered by user ID.
func (s *MemoryStore) CoRatings(ctx context.Context, movieA, movieB int) ([]RatingPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, b := s.byMovie[movieA], s.byMovie[movieB]
	users := make([]int, 0, len(a))
	for u := range a {
		if _, ok := b[u]; ok {
			users = append(users, u)
		}
	}
	sort.Ints(users)

	pairs := make([]RatingPair, 0, len(users))
	for _, u := range users {
		pairs = append(pairs, RatingPair{First: a[u], Second: b[u]})
	}
	return pairs, nil
}

// WithStore runs fn against s. It mirrors the session scoping of the
// database-backed store.
func (s *MemoryStore) WithStore(ctx context.Context, fn func(Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// SampleMovies is the three-movie example catalogue.
func SampleMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
	}
}

// SampleRatings pairs with SampleMovies. Two users rate B exactly like A
// and C as its mirror image.
func SampleRatings() []Rating {
	return []Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 5},
		{UserID: 1, MovieID: 3, Value: 1},
		{UserID: 2, MovieID: 1, Value: 4},
		{UserID: 2, MovieID: 2, Value: 4},
		{UserID: 2, MovieID: 3, Value: 2},
	}
}
