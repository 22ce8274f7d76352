// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/tomtom215/moviematch/internal/recommend"
)

// defaultRequestTimeout bounds a single recommendation computation.
const defaultRequestTimeout = 10 * time.Second

// StoreOpener hands out request-scoped stores. Both *database.DB and
// *recommend.MemoryStore satisfy it.
type StoreOpener interface {
	// WithStore runs fn against a store that is released when fn returns.
	WithStore(ctx context.Context, fn func(recommend.Store) error) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_index.go: HTML form and its JSON variant
//   - handlers_recommend.go: /api/v1/movies endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine         *recommend.Engine
	stores         StoreOpener
	requestTimeout time.Duration
	startTime      time.Time
	indexTemplate  *template.Template
}

// NewHandler creates a handler. A zero requestTimeout selects the default.
func NewHandler(engine *recommend.Engine, stores StoreOpener, requestTimeout time.Duration) (*Handler, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store is required")
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	tmpl, err := parseIndexTemplate()
	if err != nil {
		return nil, err
	}

	return &Handler{
		engine:         engine,
		stores:         stores,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
		indexTemplate:  tmpl,
	}, nil
}

// recommend runs one engine request inside a store scope and the
// per-request timeout.
func (h *Handler) recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	var resp *recommend.Response
	err := h.stores.WithStore(ctx, func(store recommend.Store) error {
		var recErr error
		resp, recErr = h.engine.Recommend(ctx, store, req)
		return recErr
	})
	return resp, err
}
