// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gustus/internal/models"
	"github.com/tomtom215/gustus/internal/profile"
)

// ErrNoRecommendations is returned when no candidate survives the filter
// and scoring sequence. Callers surface this as an explicit condition
// rather than an empty table with no explanation.
var ErrNoRecommendations = errors.New("no recommendations found")

// Engine scores and ranks candidates against a preference profile.
// It is safe for concurrent use; all state is read-only after construction.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// now is the clock used for the default max-release-year filter.
	// Overridable in tests.
	now func() time.Time
}

// NewEngine creates a recommendation engine.
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
		now:    time.Now,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend drains the candidate sources, scores every candidate against
// the profile, and returns the ranked result.
//
// limit <= 0 selects the configured default; limits above the configured
// maximum are clamped. A source that fails mid-drain is skipped and counted,
// never fatal. When nothing survives, the response (with its counters) is
// returned together with ErrNoRecommendations.
func (e *Engine) Recommend(ctx context.Context, p *profile.PreferenceProfile, sources []CandidateSource, limit int) (*Response, error) {
	if p == nil {
		return nil, fmt.Errorf("preference profile is required")
	}

	switch {
	case limit <= 0:
		limit = e.config.Limits.DefaultLimit
	case limit > e.config.Limits.MaxLimit:
		limit = e.config.Limits.MaxLimit
	}

	topGenres := make(map[string]struct{}, e.config.Limits.TopGenreCount)
	for _, g := range p.TopGenres(e.config.Limits.TopGenreCount) {
		topGenres[g] = struct{}{}
	}
	fs := newFilterSet(e.config.Filters, e.now().Year())

	resp := &Response{}
	var survivors []ScoredRecommendation

	for _, src := range sources {
		resp.Sources = append(resp.Sources, src.Name())

		pulled, err := e.drainSource(ctx, src, p, topGenres, fs, &survivors, resp)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			resp.SourceErrors++
			e.logger.Warn().Err(err).
				Str("source", src.Name()).
				Int("candidates_before_failure", pulled).
				Msg("candidate source failed, skipping")
		}
	}

	resp.Items = Rank(survivors, limit)
	resp.GeneratedAt = e.now().UTC()

	e.logger.Debug().
		Int("total_candidates", resp.TotalCandidates).
		Int("rejected", resp.Rejected).
		Int("recommended", len(resp.Items)).
		Int("source_errors", resp.SourceErrors).
		Msg("recommendation run complete")

	if len(resp.Items) == 0 {
		return resp, ErrNoRecommendations
	}
	return resp, nil
}

// drainSource pulls candidates from one source until exhaustion, error, or
// the per-source cap. Returns the number of candidates pulled.
func (e *Engine) drainSource(ctx context.Context, src CandidateSource, p *profile.PreferenceProfile, topGenres map[string]struct{}, fs filterSet, survivors *[]ScoredRecommendation, resp *Response) (int, error) {
	pulled := 0
	for pulled < e.config.Limits.MaxCandidatesPerSource {
		if err := ctx.Err(); err != nil {
			return pulled, err
		}

		candidate, ok, err := src.Next(ctx)
		if err != nil {
			return pulled, err
		}
		if !ok {
			return pulled, nil
		}

		pulled++
		resp.TotalCandidates++

		scored, kept := scoreCandidate(&candidate, p, topGenres, e.config.Weights, fs)
		if !kept {
			resp.Rejected++
			continue
		}
		*survivors = append(*survivors, scored)
	}

	e.logger.Debug().
		Str("source", src.Name()).
		Int("cap", e.config.Limits.MaxCandidatesPerSource).
		Msg("per-source candidate cap reached")
	return pulled, nil
}

// SliceSource is an in-memory CandidateSource. It backs tests and
// pre-fetched candidate lists.
type SliceSource struct {
	name string
	list []models.CandidateMovie
	pos  int
}

// NewSliceSource creates a source that yields the given candidates in order.
func NewSliceSource(name string, candidates []models.CandidateMovie) *SliceSource {
	return &SliceSource{name: name, list: candidates}
}

// Name identifies the source.
func (s *SliceSource) Name() string { return s.name }

// Next yields the next candidate until the slice is exhausted.
func (s *SliceSource) Next(_ context.Context) (models.CandidateMovie, bool, error) {
	if s.pos >= len(s.list) {
		return models.CandidateMovie{}, false, nil
	}
	c := s.list[s.pos]
	s.pos++
	return c, true, nil
}
