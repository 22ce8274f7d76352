// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package validation

import (
	"strconv"
	"strings"
)

// MaxTopN is the hard ceiling on top_n accepted from clients. The engine
// additionally clamps to its configured maximum.
const MaxTopN = 1000

// RecommendationRequest is a validated recommendations query.
type RecommendationRequest struct {
	MovieID int `param:"movie_id" validate:"required,min=1"`
	TopN    int `param:"top_n" validate:"min=0,max=1000"` // 0 = engine default
}

// SimilarityRequest is a validated pairwise similarity query.
type SimilarityRequest struct {
	MovieID int `param:"movie_id" validate:"required,min=1"`
	OtherID int `param:"other_id" validate:"required,min=1"`
}

// ParseRecommendationRequest converts raw path, query, or form values into a
// validated RecommendationRequest. An empty topN means the engine default.
func ParseRecommendationRequest(movieID, topN string) (RecommendationRequest, *RequestValidationError) {
	var req RecommendationRequest

	id, verr := parseInt("movie_id", movieID, true)
	if verr != nil {
		return req, verr
	}
	n, verr := parseInt("top_n", topN, false)
	if verr != nil {
		return req, verr
	}

	req = RecommendationRequest{MovieID: id, TopN: n}
	if verr := ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

// ParseSimilarityRequest converts the two raw movie ids of a similarity query.
func ParseSimilarityRequest(movieID, otherID string) (SimilarityRequest, *RequestValidationError) {
	var req SimilarityRequest

	a, verr := parseInt("movie_id", movieID, true)
	if verr != nil {
		return req, verr
	}
	b, verr := parseInt("other_id", otherID, true)
	if verr != nil {
		return req, verr
	}

	req = SimilarityRequest{MovieID: a, OtherID: b}
	if verr := ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

// parseInt reads a decimal integer parameter. Surrounding whitespace is
// ignored, as browsers submit form fields verbatim.
func parseInt(field, raw string, required bool) (int, *RequestValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return 0, fieldError(field, "required", raw, field+" is required")
		}
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(field, "numeric", raw, field+" must be an integer")
	}
	return n, nil
}
