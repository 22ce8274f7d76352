// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moviematch/internal/metrics"
)

// Outcome labels for recommendation metrics.
const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeIntegrity = "data_integrity"
	outcomeInvalid   = "invalid"
	outcomeCanceled  = "canceled"
	outcomeError     = "error"
)

// Engine ranks movies by item-item Pearson similarity.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// scoredCandidate is a candidate with its similarity to the target.
type scoredCandidate struct {
	movieID int
	score   float64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend returns the movies most similar to req.MovieID, best first.
//
// The target title is resolved before any scoring, so a missing target
// yields a *NotFoundError and no partial output. Every other rated movie is
// scored as correlation * support, stable-sorted descending, and the first
// TopN with a resolvable title are returned.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, store Store, req Request) (*Response, error) {
	start := time.Now()

	req, err := e.prepareRequest(req)
	if err != nil {
		e.observe(outcomeInvalid, start, 0)
		return nil, err
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	title, err := store.MovieTitle(ctx, req.MovieID)
	if err != nil {
		if IsNotFound(err) {
			e.observe(outcomeNotFound, start, 0)
			return nil, &NotFoundError{MovieID: req.MovieID}
		}
		e.observe(outcomeError, start, 0)
		return nil, fmt.Errorf("resolve target title: %w", err)
	}

	candidates, err := store.RatedMovieIDs(ctx, req.MovieID)
	if err != nil {
		e.observe(outcomeError, start, 0)
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no candidates available")
		e.observe(outcomeOK, start, 0)
		return e.emptyResponse(req, title, start), nil
	}

	scored, signal, err := e.scoreCandidates(ctx, store, req.MovieID, candidates)
	if err != nil {
		e.observe(e.outcomeFor(err), start, len(candidates))
		return nil, err
	}

	if !signal {
		rated, err := e.targetRated(ctx, store, req.MovieID)
		if err != nil {
			e.observe(e.outcomeFor(err), start, len(candidates))
			return nil, err
		}
		if !rated {
			logger.Debug().Int("candidates", len(candidates)).Msg("target has no ratings")
			e.observe(outcomeOK, start, len(candidates))
			resp := e.emptyResponse(req, title, start)
			resp.TotalCandidates = len(candidates)
			return resp, nil
		}
	}

	recs, skipped, err := e.resolveTitles(ctx, store, scored, req.TopN, logger)
	if err != nil {
		e.observe(e.outcomeFor(err), start, len(candidates))
		return nil, err
	}

	resp := &Response{
		MovieID:         req.MovieID,
		MovieTitle:      title,
		Recommendations: recs,
		TotalCandidates: len(candidates),
		Skipped:         skipped,
		Metadata:        e.buildResponseMetadata(req, start),
	}

	e.observe(outcomeOK, start, len(candidates))

	event := logger.Debug()
	if e.config.SlowRequestThreshold > 0 && time.Since(start) > e.config.SlowRequestThreshold {
		event = logger.Warn()
	}
	event.
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Int("skipped", len(skipped)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and rejects malformed requests.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.MovieID <= 0 {
		return req, fmt.Errorf("%w: movie_id must be positive, got %d", ErrInvalidRequest, req.MovieID)
	}
	if req.TopN < 0 {
		return req, fmt.Errorf("%w: top_n must be non-negative, got %d", ErrInvalidRequest, req.TopN)
	}

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	if req.TopN == 0 {
		req.TopN = e.config.DefaultTopN
	}
	if req.TopN > e.config.MaxTopN {
		req.TopN = e.config.MaxTopN
	}

	return req, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("movie_id", req.MovieID).
		Int("top_n", req.TopN).
		Logger()
}

// scoreCandidates computes the similarity of every candidate to the target
// and returns them stable-sorted by score descending. signal reports whether
// any candidate had a defined correlation.
func (e *Engine) scoreCandidates(ctx context.Context, store Store, target int, candidates []int) (scored []scoredCandidate, signal bool, err error) {
	scored = make([]scoredCandidate, 0, len(candidates))
	for _, id := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		sim, err := e.Similarity(ctx, store, target, id)
		if err != nil {
			return nil, false, fmt.Errorf("score candidate %d: %w", id, err)
		}
		signal = signal || !sim.IsSentinel()
		scored = append(scored, scoredCandidate{movieID: id, score: sim.Score()})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	return scored, signal, nil
}

// targetRated reports whether anyone rated the target. The target's
// co-ratings with itself are exactly its own ratings.
func (e *Engine) targetRated(ctx context.Context, store Store, target int) (bool, error) {
	pairs, err := store.CoRatings(ctx, target, target)
	if err != nil {
		return false, fmt.Errorf("check target ratings: %w", err)
	}
	return len(pairs) > 0, nil
}

// resolveTitles walks the ranked candidates and collects up to topN
// recommendations with titles. Candidates with no catalogue entry are
// handled according to the missing title policy.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) resolveTitles(ctx context.Context, store Store, scored []scoredCandidate, topN int, logger zerolog.Logger) ([]Recommendation, []int, error) {
	recs := make([]Recommendation, 0, min(topN, len(scored)))
	var skipped []int

	for _, c := range scored {
		if len(recs) >= topN {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		title, err := store.MovieTitle(ctx, c.movieID)
		if err != nil {
			if !IsNotFound(err) {
				return nil, nil, fmt.Errorf("resolve title of %d: %w", c.movieID, err)
			}
			if e.config.MissingTitlePolicy == PolicyFail {
				return nil, nil, &DataIntegrityError{MovieID: c.movieID}
			}
			logger.Warn().Int("candidate_id", c.movieID).Msg("rated movie has no title, skipping")
			metrics.RecordMissingTitle()
			skipped = append(skipped, c.movieID)
			continue
		}

		recs = append(recs, Recommendation{
			MovieID: c.movieID,
			Title:   title,
			Score:   c.score,
		})
	}

	return recs, skipped, nil
}

// buildResponseMetadata constructs response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID: req.RequestID,
		TopN:      req.TopN,
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: time.Now(),
	}
}

// emptyResponse returns a response with no recommendations.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, title string, start time.Time) *Response {
	return &Response{
		MovieID:         req.MovieID,
		MovieTitle:      title,
		Recommendations: []Recommendation{},
		Metadata:        e.buildResponseMetadata(req, start),
	}
}

// outcomeFor maps an error to its metrics label.
func (e *Engine) outcomeFor(err error) string {
	switch {
	case IsDataIntegrity(err):
		return outcomeIntegrity
	case ctxDone(err):
		return outcomeCanceled
	default:
		return outcomeError
	}
}

func (e *Engine) observe(outcome string, start time.Time, candidates int) {
	metrics.RecordRecommendation(outcome, time.Since(start), candidates)
}

func ctxDone(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
