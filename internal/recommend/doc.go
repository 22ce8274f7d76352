// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package recommend implements item-item collaborative filtering for movies.
//
// # Similarity
//
// Two movies are compared over their co-raters: the users who rated both.
// Pearson computes the correlation of the two aligned rating vectors and
// reports the number of co-raters as support:
//
//	corr = sum((x - mx)(y - my)) / sqrt(sum((x - mx)^2) * sum((y - my)^2))
//
// When there are no co-raters, or either vector has zero variance, the
// result is the (0, 0) sentinel. Callers never distinguish "no
// correlation" from "undefined correlation".
//
// # Ranking
//
// Engine.Recommend scores every other rated movie as correlation * support,
// stable-sorts by score descending and returns the top N with titles.
// Candidates are enumerated in ascending movie ID order, so ties are
// deterministic.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	err = db.WithStore(ctx, func(store recommend.Store) error {
//	    resp, err := engine.Recommend(ctx, store, recommend.Request{MovieID: 1})
//	    ...
//	})
//
// # Thread Safety
//
// The engine holds only immutable configuration and is safe for concurrent
// use. Each call receives its own Store, which is expected to be scoped to
// a single request.
package recommend
