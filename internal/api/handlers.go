// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gustus/internal/analysis"
	"github.com/tomtom215/gustus/internal/ingest"
	"github.com/tomtom215/gustus/internal/validation"
)

// maxUploadBytes bounds the watch-log upload size.
const maxUploadBytes = 16 << 20

// Handler carries the application state the HTTP endpoints operate on.
type Handler struct {
	reader   *ingest.Reader
	analyzer *analysis.Analyzer
	logger   zerolog.Logger

	defaultLimit int
	maxLimit     int
	startTime    time.Time
}

// NewHandler creates the endpoint handler set. The limits mirror the
// recommendation engine's defaults so query validation and ranking agree.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(reader *ingest.Reader, analyzer *analysis.Analyzer, defaultLimit, maxLimit int, logger zerolog.Logger) *Handler {
	return &Handler{
		reader:       reader,
		analyzer:     analyzer,
		logger:       logger.With().Str("component", "api").Logger(),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		startTime:    time.Now(),
	}
}

// ingestSummary is the response payload for a successful log upload.
type ingestSummary struct {
	Ingest          ingest.Stats         `json:"ingest"`
	RatedCount      int                  `json:"rated_count"`
	Lookups         analysis.LookupStats `json:"lookups"`
	Recommendations int                  `json:"recommendations"`
	Upcoming        int                  `json:"upcoming"`
	Narrative       string               `json:"narrative"`
}

// IngestLog handles POST /api/v1/log. The body is a CSV watch log,
// either raw or as the "file" part of a multipart form. Parsing and the
// full analysis run happen synchronously; the response summarizes both.
func (h *Handler) IngestLog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	body, err := h.logBody(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	defer body.Close() //nolint:errcheck // upload body close error is unactionable

	records, stats, err := h.reader.Parse(body)
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeIngestFailed, err.Error())
		return
	}

	result, err := h.analyzer.Run(r.Context(), records)
	switch {
	case errors.Is(err, analysis.ErrRunInProgress):
		rw.Conflict(ErrCodeRunInProgress, "an analysis run is already in progress")
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("Analysis run failed")
		rw.InternalError("analysis run failed")
		return
	}

	rw.Success(ingestSummary{
		Ingest:          stats,
		RatedCount:      result.Profile.RatedCount,
		Lookups:         result.Lookups,
		Recommendations: len(result.Recommendations.Items),
		Upcoming:        len(result.Upcoming),
		Narrative:       result.Narrative,
	})
}

// logBody extracts the CSV payload from a raw or multipart request body.
func (h *Handler) logBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errors.New("invalid multipart form")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("multipart form must carry a \"file\" part")
	}
	return file, nil
}

// GetProfile handles GET /api/v1/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	result, err := h.analyzer.Result()
	if err != nil {
		rw.NotFound(ErrCodeLogNotLoaded, "no watch log has been analyzed yet")
		return
	}
	rw.Success(result.Profile)
}

// GetNarrative handles GET /api/v1/profile/narrative.
func (h *Handler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	result, err := h.analyzer.Result()
	if err != nil {
		rw.NotFound(ErrCodeLogNotLoaded, "no watch log has been analyzed yet")
		return
	}
	rw.Success(map[string]string{"narrative": result.Narrative})
}

// recommendationsRequest carries the validated query parameters of the
// recommendations endpoint. The upper bound is clamped before validation,
// so only the lower bound can fail.
type recommendationsRequest struct {
	Limit int `validate:"min=1"`
}

// GetRecommendations handles GET /api/v1/recommendations?limit=N.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			rw.ValidationError("limit must be an integer", nil)
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	if verr := validation.ValidateStruct(&recommendationsRequest{Limit: limit}); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}

	result, err := h.analyzer.Result()
	if err != nil {
		rw.NotFound(ErrCodeLogNotLoaded, "no watch log has been analyzed yet")
		return
	}

	resp := result.Recommendations
	if resp == nil || len(resp.Items) == 0 {
		rw.NotFound(ErrCodeNoRecommendations, "no recommendations matched your taste profile")
		return
	}

	items := resp.Items
	if limit < len(items) {
		items = items[:limit]
	}
	trimmed := *resp
	trimmed.Items = items
	rw.Success(&trimmed)
}

// GetUpcoming handles GET /api/v1/recommendations/upcoming.
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	result, err := h.analyzer.Result()
	if err != nil {
		rw.NotFound(ErrCodeLogNotLoaded, "no watch log has been analyzed yet")
		return
	}
	rw.Success(map[string]interface{}{
		"items":        result.Upcoming,
		"generated_at": result.GeneratedAt,
	})
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. The server is ready as
// soon as it serves; whether a log has been analyzed is reported but does
// not fail readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	_, err := h.analyzer.Result()
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":         "ready",
		"log_loaded":     err == nil,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
