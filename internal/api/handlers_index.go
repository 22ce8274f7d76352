// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/validation"
)

//go:embed web/index.html web/app.js
var webFS embed.FS

// maxFormBytes bounds the POST / body.
const maxFormBytes = 4 << 10

// indexPage is the data rendered into web/index.html.
type indexPage struct {
	MovieID         int
	Submitted       bool
	Recommendations []recommend.Recommendation
	Error           string
}

// indexJSON is the body returned to script clients. Each recommendation is
// a [title, score] pair. Recommendations is null when nothing was computed.
type indexJSON struct {
	Recommendations [][2]any `json:"recommendations"`
	Error           string   `json:"error,omitempty"`
}

func parseIndexTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return tmpl, nil
}

// Index handles GET / by rendering the empty form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, http.StatusOK, indexPage{})
}

// IndexSubmit handles POST / with a movie_id (and optional top_n) form field.
// Clients sending Accept: application/json get the [title, score] list;
// browsers get the page re-rendered with a results table.
func (h *Handler) IndexSubmit(w http.ResponseWriter, r *http.Request) {
	wantJSON := acceptsJSON(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.indexFailure(w, r, wantJSON, http.StatusBadRequest, 0, "Invalid form submission")
		return
	}

	params, verr := validation.ParseRecommendationRequest(r.PostForm.Get("movie_id"), r.PostForm.Get("top_n"))
	if verr != nil {
		h.indexFailure(w, r, wantJSON, http.StatusBadRequest, 0, verr.ToAPIError().Message)
		return
	}

	resp, err := h.recommend(r.Context(), recommend.Request{
		MovieID:   params.MovieID,
		TopN:      params.TopN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		se := classifyError(err)
		logError(r, se, err)
		h.indexFailure(w, r, wantJSON, se.status, params.MovieID, se.message)
		return
	}

	if wantJSON {
		writeJSON(w, http.StatusOK, indexJSON{Recommendations: tuples(resp.Recommendations)})
		return
	}

	h.renderIndex(w, r, http.StatusOK, indexPage{
		MovieID:         params.MovieID,
		Submitted:       true,
		Recommendations: resp.Recommendations,
	})
}

// AppJS serves the embedded client script.
func (h *Handler) AppJS(w http.ResponseWriter, r *http.Request) {
	body, err := webFS.ReadFile("web/app.js")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

func (h *Handler) indexFailure(w http.ResponseWriter, r *http.Request, wantJSON bool, status, movieID int, message string) {
	if wantJSON {
		writeJSON(w, status, indexJSON{Error: message})
		return
	}
	h.renderIndex(w, r, status, indexPage{MovieID: movieID, Submitted: true, Error: message})
}

// renderIndex executes into a buffer so template errors become a clean 500.
func (h *Handler) renderIndex(w http.ResponseWriter, r *http.Request, status int, page indexPage) {
	var buf bytes.Buffer
	if err := h.indexTemplate.Execute(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render index page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func tuples(recs []recommend.Recommendation) [][2]any {
	out := make([][2]any, len(recs))
	for i, rec := range recs {
		out[i] = [2]any{rec.Title, rec.Score}
	}
	return out
}
