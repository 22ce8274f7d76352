// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// failingOpener is a StoreOpener whose scope and ping always fail.
type failingOpener struct {
	err error
}

func (f *failingOpener) WithStore(context.Context, func(recommend.Store) error) error { return f.err }
func (f *failingOpener) Ping(context.Context) error                                   { return f.err }

// setupTestServer returns a fully wired router over stores.
func setupTestServer(t *testing.T, stores StoreOpener, cfg *recommend.Config) http.Handler {
	t.Helper()

	engine, err := recommend.NewEngine(cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	handler, err := NewHandler(engine, stores, 5*time.Second)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = []string{"*"}
	mwCfg.RateLimitDisabled = true
	return NewRouter(handler, NewChiMiddleware(mwCfg)).SetupChi()
}

func sampleStore() *recommend.MemoryStore {
	return recommend.NewMemoryStore(recommend.SampleMovies(), recommend.SampleRatings())
}

// untitledStore adds movie 4, which is rated like B but has no title.
func untitledStore() *recommend.MemoryStore {
	ratings := append(recommend.SampleRatings(),
		recommend.Rating{UserID: 1, MovieID: 4, Value: 5},
		recommend.Rating{UserID: 2, MovieID: 4, Value: 4},
	)
	return recommend.NewMemoryStore(recommend.SampleMovies(), ratings)
}

func postForm(t *testing.T, srv http.Handler, form url.Values, acceptJSON bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if acceptJSON {
		req.Header.Set("Accept", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) APIResponse {
	t.Helper()
	var env APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an API envelope: %v (%s)", err, rec.Body.String())
	}
	if data != nil {
		var raw struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func TestIndex_Get(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="movieForm"`) {
		t.Error("index page is missing the movie form")
	}
	if strings.Contains(body, "<table>") || strings.Contains(body, "No recommendations found") {
		t.Error("GET / should not render results")
	}
}

func TestIndex_GetIgnoresQuery(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	rec := get(t, srv, "/?movie_id=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<table>") {
		t.Error("GET / with a query string rendered results")
	}
}

func TestIndexSubmit_JSON(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	rec := postForm(t, srv, url.Values{"movie_id": {"1"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Recommendations [][]any `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []struct {
		title string
		score float64
	}{{"B", 2}, {"C", -2}}
	if len(body.Recommendations) != len(want) {
		t.Fatalf("got %v, want %d entries", body.Recommendations, len(want))
	}
	for i, w := range want {
		pair := body.Recommendations[i]
		if pair[0] != w.title {
			t.Errorf("entry %d title = %v, want %s", i, pair[0], w.title)
		}
		if score, ok := pair[1].(float64); !ok || math.Abs(score-w.score) > 1e-9 {
			t.Errorf("entry %d score = %v, want %v", i, pair[1], w.score)
		}
	}
}

func TestIndexSubmit_JSONEmpty(t *testing.T) {
	store := recommend.NewMemoryStore(recommend.SampleMovies(), nil)
	srv := setupTestServer(t, store, nil)

	rec := postForm(t, srv, url.Values{"movie_id": {"1"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"recommendations":[]}` {
		t.Errorf("body = %s, want empty list", got)
	}
}

func TestIndexSubmit_HTML(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	rec := postForm(t, srv, url.Values{"movie_id": {"1"}, "top_n": {"1"}}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<td>B</td><td>2</td>") {
		t.Errorf("page is missing the B row: %s", body)
	}
	if strings.Contains(body, "<td>C</td>") {
		t.Error("top_n=1 should only render one row")
	}
}

func TestIndexSubmit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      StoreOpener
		cfg        *recommend.Config
		movieID    string
		wantStatus int
		wantText   string
	}{
		{name: "missing id", store: sampleStore(), movieID: "", wantStatus: http.StatusBadRequest, wantText: "movie_id is required"},
		{name: "non-integer id", store: sampleStore(), movieID: "abc", wantStatus: http.StatusBadRequest, wantText: "movie_id must be an integer"},
		{name: "unknown movie", store: sampleStore(), movieID: "99", wantStatus: http.StatusNotFound, wantText: "movie 99"},
		{
			name:       "missing title under fail policy",
			store:      untitledStore(),
			cfg:        &recommend.Config{DefaultTopN: 5, MaxTopN: 100, MissingTitlePolicy: recommend.PolicyFail},
			movieID:    "1",
			wantStatus: http.StatusInternalServerError,
			wantText:   "movie 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupTestServer(t, tt.store, tt.cfg)

			for _, acceptJSON := range []bool{true, false} {
				rec := postForm(t, srv, url.Values{"movie_id": {tt.movieID}}, acceptJSON)
				if rec.Code != tt.wantStatus {
					t.Errorf("json=%v status = %d, want %d", acceptJSON, rec.Code, tt.wantStatus)
				}
				if !strings.Contains(rec.Body.String(), tt.wantText) {
					t.Errorf("json=%v body = %s, want it to contain %q", acceptJSON, rec.Body.String(), tt.wantText)
				}
			}
		})
	}
}

func TestRecommendations(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	rec := get(t, srv, "/api/v1/movies/1/recommendations?top_n=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var resp recommend.Response
	env := decodeEnvelope(t, rec, &resp)
	if !env.Success {
		t.Fatal("success = false")
	}
	if resp.MovieTitle != "A" {
		t.Errorf("movie_title = %q, want A", resp.MovieTitle)
	}
	if len(resp.Recommendations) != 2 || resp.Recommendations[0].Title != "B" || resp.Recommendations[1].Title != "C" {
		t.Errorf("recommendations = %+v, want B then C", resp.Recommendations)
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("meta.request_id missing")
	}
	if resp.Metadata.RequestID != env.Meta.RequestID {
		t.Errorf("engine request_id = %q, want HTTP request id %q", resp.Metadata.RequestID, env.Meta.RequestID)
	}
}

func TestRecommendations_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      StoreOpener
		cfg        *recommend.Config
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "non-integer id", store: sampleStore(), target: "/api/v1/movies/abc/recommendations", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "zero id", store: sampleStore(), target: "/api/v1/movies/0/recommendations", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "negative top_n", store: sampleStore(), target: "/api/v1/movies/1/recommendations?top_n=-1", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "top_n above ceiling", store: sampleStore(), target: "/api/v1/movies/1/recommendations?top_n=5000", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "unknown movie", store: sampleStore(), target: "/api/v1/movies/42/recommendations", wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{
			name:       "missing title under fail policy",
			store:      untitledStore(),
			cfg:        &recommend.Config{DefaultTopN: 5, MaxTopN: 100, MissingTitlePolicy: recommend.PolicyFail},
			target:     "/api/v1/movies/1/recommendations",
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeDataIntegrity,
		},
		{
			name:       "store failure",
			store:      &failingOpener{err: errors.New("pool exhausted")},
			target:     "/api/v1/movies/1/recommendations",
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
		{
			name:       "timeout",
			store:      &failingOpener{err: context.DeadlineExceeded},
			target:     "/api/v1/movies/1/recommendations",
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupTestServer(t, tt.store, tt.cfg)

			rec := get(t, srv, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec, nil)
			if env.Success {
				t.Error("success = true on error")
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendations_SkipsMissingTitle(t *testing.T) {
	srv := setupTestServer(t, untitledStore(), nil)

	rec := get(t, srv, "/api/v1/movies/1/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp recommend.Response
	decodeEnvelope(t, rec, &resp)

	for _, r := range resp.Recommendations {
		if r.MovieID == 4 {
			t.Error("untitled movie 4 was returned")
		}
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0] != 4 {
		t.Errorf("skipped = %v, want [4]", resp.Skipped)
	}
}

func TestSimilarity(t *testing.T) {
	srv := setupTestServer(t, sampleStore(), nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		want       SimilarityResponse
	}{
		{
			name:       "agreeing pair",
			target:     "/api/v1/movies/1/similarity/2",
			wantStatus: http.StatusOK,
			want:       SimilarityResponse{MovieID: 1, OtherID: 2, Correlation: 1, Support: 2, Score: 2},
		},
		{
			name:       "opposing pair",
			target:     "/api/v1/movies/1/similarity/3",
			wantStatus: http.StatusOK,
			want:       SimilarityResponse{MovieID: 1, OtherID: 3, Correlation: -1, Support: 2, Score: -2},
		},
		{name: "unknown other", target: "/api/v1/movies/1/similarity/9", wantStatus: http.StatusNotFound},
		{name: "invalid other", target: "/api/v1/movies/1/similarity/x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got SimilarityResponse
			decodeEnvelope(t, rec, &got)
			if got.MovieID != tt.want.MovieID || got.OtherID != tt.want.OtherID || got.Support != tt.want.Support ||
				math.Abs(got.Correlation-tt.want.Correlation) > 1e-9 || math.Abs(got.Score-tt.want.Score) > 1e-9 {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		srv := setupTestServer(t, &failingOpener{err: errors.New("down")}, nil)
		if rec := get(t, srv, "/api/v1/health/live"); rec.Code != http.StatusOK {
			t.Errorf("live status = %d, want 200 even when the store is down", rec.Code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		srv := setupTestServer(t, sampleStore(), nil)
		if rec := get(t, srv, "/api/v1/health/ready"); rec.Code != http.StatusOK {
			t.Errorf("ready status = %d, want 200", rec.Code)
		}
	})

	t.Run("not ready", func(t *testing.T) {
		srv := setupTestServer(t, &failingOpener{err: errors.New("down")}, nil)
		rec := get(t, srv, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("ready status = %d, want 503", rec.Code)
		}
	})
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	engine, err := recommend.NewEngine(nil, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if _, err := NewHandler(nil, sampleStore(), 0); err == nil {
		t.Error("NewHandler(nil engine) should fail")
	}
	if _, err := NewHandler(engine, nil, 0); err == nil {
		t.Error("NewHandler(nil store) should fail")
	}

	h, err := NewHandler(engine, sampleStore(), 0)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if h.requestTimeout != defaultRequestTimeout {
		t.Errorf("requestTimeout = %v, want default %v", h.requestTimeout, defaultRequestTimeout)
	}
}
