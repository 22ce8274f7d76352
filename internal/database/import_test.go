// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/moviematch/internal/recommend"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportMovieLens(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	dir := t.TempDir()

	movies := writeFile(t, dir, "movies.csv", `movieId,title,genres
1,Toy Story (1995),Adventure|Animation
2,Jumanji (1995),Adventure|Children
3,"Grumpier Old Men, The (1995)",Comedy|Romance
`)
	ratings := writeFile(t, dir, "ratings.csv", `userId,movieId,rating,timestamp
1,1,4.0,964982703
1,2,4.0,964981247
1,3,1.0,964982224
2,1,5.0,964983815
2,2,5.0,964982931
2,3,2.5,964982400
`)

	stats, err := db.ImportMovieLens(ctx, movies, ratings)
	if err != nil {
		t.Fatalf("ImportMovieLens() error = %v", err)
	}
	if stats.Movies != 3 || stats.Ratings != 6 {
		t.Errorf("stats = %+v, want 3 movies and 6 ratings", stats)
	}

	err = db.WithStore(ctx, func(store recommend.Store) error {
		title, err := store.MovieTitle(ctx, 3)
		if err != nil {
			return err
		}
		if title != "Grumpier Old Men, The (1995)" {
			t.Errorf("MovieTitle(3) = %q", title)
		}

		pairs, err := store.CoRatings(ctx, 1, 3)
		if err != nil {
			return err
		}
		if len(pairs) != 2 || pairs[1].Second != 2.5 {
			t.Errorf("CoRatings(1, 3) = %v", pairs)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithStore() error = %v", err)
	}

	// Re-importing keeps existing movies
	stats, err = db.ImportMovieLens(ctx, movies, ratings)
	if err != nil {
		t.Fatalf("second ImportMovieLens() error = %v", err)
	}
	if stats.Movies != 0 {
		t.Errorf("second import inserted %d movies, want 0", stats.Movies)
	}
}

func TestImportMovieLens_MissingFile(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	movies := writeFile(t, dir, "movies.csv", "movieId,title,genres\n")

	_, err := db.ImportMovieLens(context.Background(), movies, filepath.Join(dir, "absent.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ImportMovieLens() error = %v, want os.ErrNotExist", err)
	}
}

func TestEscapeLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain/path.csv", "plain/path.csv"},
		{"it's.csv", "it''s.csv"},
		{"''", "''''"},
	}
	for _, tt := range tests {
		if got := escapeLiteral(tt.in); got != tt.want {
			t.Errorf("escapeLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
