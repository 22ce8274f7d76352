// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/validation"
)

// statusError is the HTTP rendering of a failure.
type statusError struct {
	status  int
	code    string
	message string
	details any
}

// classifyError maps engine and store errors to HTTP responses.
func classifyError(err error) statusError {
	var notFound *recommend.NotFoundError
	var integrity *recommend.DataIntegrityError

	switch {
	case errors.As(err, &notFound):
		return statusError{
			status:  http.StatusNotFound,
			code:    ErrCodeNotFound,
			message: err.Error(),
			details: map[string]any{"movie_id": notFound.MovieID},
		}
	case recommend.IsNotFound(err):
		return statusError{status: http.StatusNotFound, code: ErrCodeNotFound, message: err.Error()}
	case errors.As(err, &integrity):
		return statusError{
			status:  http.StatusInternalServerError,
			code:    ErrCodeDataIntegrity,
			message: err.Error(),
			details: map[string]any{"movie_id": integrity.MovieID},
		}
	case errors.Is(err, recommend.ErrInvalidRequest):
		return statusError{status: http.StatusBadRequest, code: ErrCodeValidation, message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return statusError{status: http.StatusServiceUnavailable, code: ErrCodeTimeout, message: "Request timed out"}
	default:
		return statusError{status: http.StatusInternalServerError, code: ErrCodeInternalError, message: "Failed to compute recommendations"}
	}
}

// respondError writes err as an API error envelope.
func respondError(rw *ResponseWriter, r *http.Request, err error) {
	se := classifyError(err)
	logError(r, se, err)
	rw.ErrorWithDetails(se.status, se.code, se.message, se.details)
}

// respondValidationError writes a 400 VALIDATION_ERROR envelope.
func respondValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

func logError(r *http.Request, se statusError, err error) {
	logger := logging.Ctx(r.Context())
	event := logger.Debug()
	if se.status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("code", se.code).Int("status", se.status).Msg("Request failed")
}
