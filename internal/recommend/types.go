// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"time"
)

// Rating is a single user's rating of a movie.
type Rating struct {
	// UserID identifies the rater.
	UserID int `json:"user_id"`

	// MovieID identifies the rated movie.
	MovieID int `json:"movie_id"`

	// Value is the rating given by the user.
	Value float64 `json:"rating"`
}

// Movie is a catalogue entry.
type Movie struct {
	// ID is the movie identifier.
	ID int `json:"movie_id"`

	// Title is the display title.
	Title string `json:"title"`
}

// RatingPair holds one co-rater's ratings of two movies.
// First is the rating of the first movie of the compared pair.
type RatingPair struct {
	First  float64 `json:"first"`
	Second float64 `json:"second"`
}

// SimilarityResult is the outcome of comparing two movies.
type SimilarityResult struct {
	// Correlation is the Pearson correlation in [-1, 1].
	// It is 0 when the correlation is undefined.
	Correlation float64 `json:"correlation"`

	// Support is the number of co-raters. It is 0 together with
	// Correlation for the no-signal sentinel.
	Support int `json:"support"`
}

// Score returns the support-weighted correlation used for ranking.
func (s SimilarityResult) Score() float64 {
	return s.Correlation * float64(s.Support)
}

// IsSentinel reports whether s is the (0, 0) no-signal result.
func (s SimilarityResult) IsSentinel() bool {
	return s.Correlation == 0 && s.Support == 0
}

// Recommendation is a ranked similar movie.
type Recommendation struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movie_id"`

	// Title is the recommended movie's title.
	Title string `json:"title"`

	// Score is correlation * support against the target movie.
	Score float64 `json:"score"`
}

// Request is a recommendation request.
type Request struct {
	// MovieID is the target movie.
	MovieID int `json:"movie_id"`

	// TopN is the maximum number of recommendations to return.
	// Defaults to Config.DefaultTopN if zero.
	TopN int `json:"top_n,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a recommendation response.
type Response struct {
	// MovieID is the target movie.
	MovieID int `json:"movie_id"`

	// MovieTitle is the resolved title of the target movie.
	MovieTitle string `json:"movie_title"`

	// Recommendations is ordered by score descending.
	Recommendations []Recommendation `json:"recommendations"`

	// TotalCandidates is the number of rated movies that were scored.
	TotalCandidates int `json:"total_candidates"`

	// Skipped lists candidate IDs dropped because they had no movie row.
	Skipped []int `json:"skipped,omitempty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// TopN is the effective result limit after defaults and clamping.
	TopN int `json:"top_n"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Store is the read-only data source the engine works against.
// Implementations are expected to be scoped to a single request.
type Store interface {
	// MovieTitle returns the title of a movie.
	// Returns an error wrapping ErrMovieNotFound if there is no such movie.
	MovieTitle(ctx context.Context, movieID int) (string, error)

	// RatedMovieIDs returns the distinct IDs of movies with at least one
	// rating, excluding excludeID, in ascending order.
	RatedMovieIDs(ctx context.Context, excludeID int) ([]int, error)

	// CoRatings returns the paired ratings of users who rated both movies.
	CoRatings(ctx context.Context, movieA, movieB int) ([]RatingPair, error)
}
