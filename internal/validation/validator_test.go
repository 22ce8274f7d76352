// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestParseRecommendationRequest(t *testing.T) {
	tests := []struct {
		name      string
		movieID   string
		topN      string
		want      RecommendationRequest
		wantField string
		wantTag   string
	}{
		{name: "id only", movieID: "1", want: RecommendationRequest{MovieID: 1}},
		{name: "id and top_n", movieID: "42", topN: "10", want: RecommendationRequest{MovieID: 42, TopN: 10}},
		{name: "whitespace trimmed", movieID: " 7 ", topN: " 3", want: RecommendationRequest{MovieID: 7, TopN: 3}},
		{name: "explicit zero top_n", movieID: "1", topN: "0", want: RecommendationRequest{MovieID: 1}},
		{name: "missing id", movieID: "", wantField: "movie_id", wantTag: "required"},
		{name: "non-integer id", movieID: "abc", wantField: "movie_id", wantTag: "numeric"},
		{name: "float id", movieID: "1.5", wantField: "movie_id", wantTag: "numeric"},
		{name: "zero id", movieID: "0", wantField: "movie_id", wantTag: "required"},
		{name: "negative id", movieID: "-3", wantField: "movie_id", wantTag: "min"},
		{name: "non-integer top_n", movieID: "1", topN: "five", wantField: "top_n", wantTag: "numeric"},
		{name: "negative top_n", movieID: "1", topN: "-1", wantField: "top_n", wantTag: "min"},
		{name: "top_n above ceiling", movieID: "1", topN: "1001", wantField: "top_n", wantTag: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, verr := ParseRecommendationRequest(tt.movieID, tt.topN)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				if got != tt.want {
					t.Errorf("got %+v, want %+v", got, tt.want)
				}
				return
			}

			if verr == nil {
				t.Fatalf("expected error for field %s, got %+v", tt.wantField, got)
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestParseSimilarityRequest(t *testing.T) {
	got, verr := ParseSimilarityRequest("1", "3")
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if got.MovieID != 1 || got.OtherID != 3 {
		t.Errorf("got %+v", got)
	}

	if _, verr := ParseSimilarityRequest("1", "x"); verr == nil || verr.Errors()[0].Field() != "other_id" {
		t.Errorf("ParseSimilarityRequest(1, x) error = %v, want other_id failure", verr)
	}
	if _, verr := ParseSimilarityRequest("1", "1"); verr != nil {
		t.Errorf("self similarity should be accepted, got %v", verr)
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		_, verr := ParseRecommendationRequest("-1", "")
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Message != "movie_id must be at least 1" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "movie_id" {
			t.Errorf("Details[field] = %v, want movie_id", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		verr := ValidateStruct(&RecommendationRequest{MovieID: -1, TopN: -1})
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]any)
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want two entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "movie_id") || !strings.Contains(apiErr.Message, "top_n") {
			t.Errorf("Message = %q, want both fields named", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
			t.Errorf("got %+v", apiErr)
		}
	})
}

func TestRequestValidationError_Error(t *testing.T) {
	verr := ValidateStruct(&SimilarityRequest{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	msg := verr.Error()
	if !strings.Contains(msg, "movie_id is required") || !strings.Contains(msg, "other_id is required") {
		t.Errorf("Error() = %q", msg)
	}
}
