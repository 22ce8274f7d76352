// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package validation provides request validation using go-playground/validator v10.
//
// Raw path, query, and form values are parsed into request structs and then
// validated against their `validate` tags with a thread-safe singleton
// validator. Failures are reported as *RequestValidationError, which
// converts to the API's VALIDATION_ERROR format:
//
//	req, verr := validation.ParseRecommendationRequest(chi.URLParam(r, "movieID"), r.URL.Query().Get("top_n"))
//	if verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr)
//	    return
//	}
//
// Field names in messages come from the `param` struct tag (movie_id,
// top_n) rather than the Go field name.
package validation
