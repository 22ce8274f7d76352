// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/validation"
)

// SimilarityResponse is the payload of the pairwise similarity endpoint.
type SimilarityResponse struct {
	MovieID     int     `json:"movie_id"`
	OtherID     int     `json:"other_id"`
	Correlation float64 `json:"correlation"`
	Support     int     `json:"support"`
	Score       float64 `json:"score"`
}

// Recommendations handles GET /api/v1/movies/{movieID}/recommendations?top_n=N
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, verr := validation.ParseRecommendationRequest(chi.URLParam(r, "movieID"), r.URL.Query().Get("top_n"))
	if verr != nil {
		respondValidationError(rw, verr)
		return
	}

	resp, err := h.recommend(r.Context(), recommend.Request{
		MovieID:   params.MovieID,
		TopN:      params.TopN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondError(rw, r, err)
		return
	}

	rw.Success(resp)
}

// Similarity handles GET /api/v1/movies/{movieID}/similarity/{otherID}
// Both movies must exist in the catalogue.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, verr := validation.ParseSimilarityRequest(chi.URLParam(r, "movieID"), chi.URLParam(r, "otherID"))
	if verr != nil {
		respondValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var result recommend.SimilarityResult
	err := h.stores.WithStore(ctx, func(store recommend.Store) error {
		for _, id := range []int{params.MovieID, params.OtherID} {
			if _, err := store.MovieTitle(ctx, id); err != nil {
				if recommend.IsNotFound(err) {
					return &recommend.NotFoundError{MovieID: id}
				}
				return err
			}
		}

		var simErr error
		result, simErr = h.engine.Similarity(ctx, store, params.MovieID, params.OtherID)
		return simErr
	})
	if err != nil {
		respondError(rw, r, err)
		return
	}

	rw.Success(SimilarityResponse{
		MovieID:     params.MovieID,
		OtherID:     params.OtherID,
		Correlation: result.Correlation,
		Support:     result.Support,
		Score:       result.Score(),
	})
}
