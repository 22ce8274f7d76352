// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrMovieNotFound is returned when a movie ID has no catalogue entry.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrMissingTitle is returned when a rated movie has no catalogue entry.
	ErrMissingTitle = errors.New("rated movie has no title")

	// ErrInvalidRequest is returned for requests rejected before computation.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)

// NotFoundError reports a target movie that does not exist.
type NotFoundError struct {
	MovieID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %d: %v", e.MovieID, ErrMovieNotFound)
}

// Unwrap allows errors.Is(err, ErrMovieNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrMovieNotFound
}

// DataIntegrityError reports a movie present in ratings but missing from
// the catalogue.
type DataIntegrityError struct {
	MovieID int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("movie %d: %v", e.MovieID, ErrMissingTitle)
}

// Unwrap allows errors.Is(err, ErrMissingTitle).
func (e *DataIntegrityError) Unwrap() error {
	return ErrMissingTitle
}

// IsNotFound reports whether err is a missing target movie.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMovieNotFound)
}

// IsDataIntegrity reports whether err is a missing title for a rated movie.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrMissingTitle)
}
