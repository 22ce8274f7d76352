// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/tomtom215/moviematch/internal/metrics"
)

// Pearson computes the Pearson correlation of paired ratings.
//
// Support is the number of pairs. The (0, 0) sentinel is returned when
// there are no pairs or either side has zero variance, which covers a
// single co-rater and co-raters who all gave the same rating.
func Pearson(pairs []RatingPair) SimilarityResult {
	if len(pairs) == 0 {
		return SimilarityResult{}
	}

	var sumA, sumB float64
	for _, p := range pairs {
		sumA += p.First
		sumB += p.Second
	}
	n := float64(len(pairs))
	meanA := sumA / n
	meanB := sumB / n

	var num, denA, denB float64
	for _, p := range pairs {
		diffA := p.First - meanA
		diffB := p.Second - meanB
		num += diffA * diffB
		denA += diffA * diffA
		denB += diffB * diffB
	}

	if denA == 0 || denB == 0 {
		return SimilarityResult{}
	}

	corr := num / math.Sqrt(denA*denB)

	// Clamp floating-point drift back into range
	if corr > 1 {
		corr = 1
	} else if corr < -1 {
		corr = -1
	}

	return SimilarityResult{
		Correlation: corr,
		Support:     len(pairs),
	}
}

// Similarity compares two movies over their co-raters in store.
// Movies are not checked for existence; an unknown ID has no co-raters and
// yields the (0, 0) sentinel.
func (e *Engine) Similarity(ctx context.Context, store Store, movieA, movieB int) (SimilarityResult, error) {
	pairs, err := store.CoRatings(ctx, movieA, movieB)
	if err != nil {
		return SimilarityResult{}, fmt.Errorf("co-ratings %d/%d: %w", movieA, movieB, err)
	}

	result := Pearson(pairs)
	metrics.RecordSimilarity(result.IsSentinel())
	return result, nil
}
