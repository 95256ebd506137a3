// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
	"github.com/tomtom215/gustus/internal/profile"
	"github.com/tomtom215/gustus/internal/ratingcache"
	"github.com/tomtom215/gustus/internal/recommend"
	"github.com/tomtom215/gustus/internal/tmdb"
)

// ErrRunInProgress is returned when a run is requested while another is
// still active.
var ErrRunInProgress = errors.New("analysis run already in progress")

// ErrNoResult is returned by Result before the first successful run.
var ErrNoResult = errors.New("no analysis result available yet")

// Config holds the orchestration knobs that sit above the engine's own
// configuration.
type Config struct {
	// TopDirectorSources is how many of the profile's top directors get
	// a filmography source per run.
	TopDirectorSources int `json:"top_director_sources"`

	// UpcomingWindowMonths bounds the upcoming-releases query, counted
	// forward from the run date.
	UpcomingWindowMonths int `json:"upcoming_window_months"`

	// UpcomingLimit caps the merged upcoming-releases list.
	UpcomingLimit int `json:"upcoming_limit"`
}

// DefaultConfig returns the canonical orchestration configuration.
func DefaultConfig() Config {
	return Config{
		TopDirectorSources:   3,
		UpcomingWindowMonths: 12,
		UpcomingLimit:        50,
	}
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.TopDirectorSources < 0 {
		return fmt.Errorf("top director sources must be non-negative, got %d", c.TopDirectorSources)
	}
	if c.UpcomingWindowMonths < 1 {
		return fmt.Errorf("upcoming window must be at least 1 month, got %d", c.UpcomingWindowMonths)
	}
	if c.UpcomingLimit < 1 {
		return fmt.Errorf("upcoming limit must be at least 1, got %d", c.UpcomingLimit)
	}
	return nil
}

// LookupStats counts the outcomes of public-rating resolution for one run.
type LookupStats struct {
	CacheHits int `json:"cache_hits"`
	Resolved  int `json:"resolved"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// Result is the output of one analysis run.
type Result struct {
	Profile         *profile.PreferenceProfile `json:"profile"`
	Narrative       string                     `json:"narrative"`
	Recommendations *recommend.Response        `json:"recommendations"`
	Upcoming        []models.CandidateMovie    `json:"upcoming"`
	Lookups         LookupStats                `json:"lookups"`
	RecordCount     int                        `json:"record_count"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// Analyzer runs the full pipeline. Safe for concurrent use; concurrent
// Run calls beyond the first fail fast with ErrRunInProgress.
type Analyzer struct {
	config  Config
	meta    tmdb.MetadataClient
	cache   *ratingcache.Store
	builder *profile.Builder
	engine  *recommend.Engine
	logger  zerolog.Logger

	mu         sync.Mutex
	running    bool
	lastResult *Result

	now func() time.Time
}

// NewAnalyzer wires the pipeline.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalyzer(cfg Config, meta tmdb.MetadataClient, cache *ratingcache.Store, builder *profile.Builder, engine *recommend.Engine, logger zerolog.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if meta == nil {
		return nil, fmt.Errorf("metadata client is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("rating cache is required")
	}
	if builder == nil {
		return nil, fmt.Errorf("profile builder is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("recommendation engine is required")
	}
	return &Analyzer{
		config:  cfg,
		meta:    meta,
		cache:   cache,
		builder: builder,
		engine:  engine,
		logger:  logger.With().Str("component", "analysis").Logger(),
		now:     time.Now,
	}, nil
}

// Result returns the output of the most recent completed run.
func (a *Analyzer) Result() (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastResult == nil {
		return nil, ErrNoResult
	}
	return a.lastResult, nil
}

// Run executes one analysis pass over the given watch records. External
// lookups are sequential and rate limited by the metadata client; a
// failed lookup skips that title rather than failing the run.
func (a *Analyzer) Run(ctx context.Context, records []models.WatchRecord) (*Result, error) {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil, ErrRunInProgress
	}
	a.running = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	start := a.now()
	result, err := a.run(ctx, records)

	recCount := 0
	if result != nil && result.Recommendations != nil {
		recCount = len(result.Recommendations.Items)
	}
	metrics.RecordAnalysisRun(a.now().Sub(start), recCount, err)

	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.lastResult = result
	a.mu.Unlock()
	return result, nil
}

func (a *Analyzer) run(ctx context.Context, records []models.WatchRecord) (*Result, error) {
	snapshot, err := a.cache.Load()
	if err != nil {
		return nil, fmt.Errorf("load rating cache: %w", err)
	}
	metrics.CacheSnapshotSize.Set(float64(snapshot.Len()))

	publicRatings, newEntries, lookups := a.resolveRatings(ctx, records, snapshot)

	p := a.builder.Build(records, publicRatings)
	a.logger.Info().
		Int("records", len(records)).
		Int("rated", p.RatedCount).
		Int("cache_hits", lookups.CacheHits).
		Int("resolved", lookups.Resolved).
		Int("unmatched", lookups.Unmatched).
		Int("failed", lookups.Failed).
		Msg("Preference profile built")

	sources := a.buildSources(p)
	resp, err := a.engine.Recommend(ctx, p, sources, 0)
	if err != nil && !errors.Is(err, recommend.ErrNoRecommendations) {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	upcoming := a.upcomingReleases(ctx, p)

	if len(newEntries) > 0 {
		if err := a.cache.Append(newEntries); err != nil {
			a.logger.Warn().Err(err).Int("entries", len(newEntries)).Msg("Failed to append resolved ratings to cache")
		}
	}

	return &Result{
		Profile:         p,
		Narrative:       profile.Narrate(p),
		Recommendations: resp,
		Upcoming:        upcoming,
		Lookups:         lookups,
		RecordCount:     len(records),
		GeneratedAt:     a.now().UTC(),
	}, nil
}

// resolveRatings joins the watch log against the cache snapshot and
// resolves the remainder through the metadata service, one call at a
// time. Newly resolved entries are returned for the append pass.
func (a *Analyzer) resolveRatings(ctx context.Context, records []models.WatchRecord, snapshot *ratingcache.Snapshot) (map[string]float64, []ratingcache.Entry, LookupStats) {
	publicRatings := snapshot.Ratings()
	var newEntries []ratingcache.Entry
	var stats LookupStats

	seen := make(map[string]struct{}, len(records))
	for i := range records {
		id := records[i].ExternalID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if snapshot.Contains(id) {
			stats.CacheHits++
			metrics.RecordLookup("cache_hit", 0)
			continue
		}
		if ctx.Err() != nil {
			break
		}

		lookupStart := a.now()
		found, err := a.meta.FindByExternalID(ctx, id)
		elapsed := a.now().Sub(lookupStart)
		switch {
		case err != nil:
			stats.Failed++
			metrics.RecordLookup("error", elapsed)
			a.logger.Warn().Err(err).Str("external_id", id).Str("title", records[i].Title).Msg("Rating lookup failed, skipping")
		case found == nil:
			stats.Unmatched++
			metrics.RecordLookup("unmatched", elapsed)
		default:
			stats.Resolved++
			metrics.RecordLookup("resolved", elapsed)
			publicRatings[id] = found.PublicRating
			newEntries = append(newEntries, ratingcache.Entry{
				ExternalID:   id,
				TMDBID:       found.TMDBID,
				Title:        found.Title,
				Year:         releaseYearOf(found.ReleaseDate),
				PublicRating: found.PublicRating,
			})
		}
	}

	return publicRatings, newEntries, stats
}

// buildSources creates one discover source per top genre and one
// filmography source per top director.
func (a *Analyzer) buildSources(p *profile.PreferenceProfile) []recommend.CandidateSource {
	cfg := a.engine.Config()
	today := a.now().UTC()

	var sources []recommend.CandidateSource
	for _, genre := range p.TopGenres(cfg.Limits.TopGenreCount) {
		sources = append(sources, tmdb.NewGenreSource(a.meta, genre, tmdb.DiscoverFilter{
			SortBy:         "popularity.desc",
			ReleasedBefore: today,
			MinVotes:       cfg.Filters.MinVoteCount,
		}))
	}
	for _, director := range p.TopDirectors(a.config.TopDirectorSources) {
		sources = append(sources, tmdb.NewPersonSource(a.meta, director))
	}
	return sources
}

// upcomingReleases queries each top genre for releases inside the
// configured forward window, merged and deduplicated by title. A failed
// genre query is skipped.
func (a *Analyzer) upcomingReleases(ctx context.Context, p *profile.PreferenceProfile) []models.CandidateMovie {
	cfg := a.engine.Config()
	today := a.now().UTC()
	horizon := today.AddDate(0, a.config.UpcomingWindowMonths, 0)

	var upcoming []models.CandidateMovie
	seenTitles := make(map[string]struct{})
	for _, genre := range p.TopGenres(cfg.Limits.TopGenreCount) {
		candidates, err := a.meta.Discover(ctx, tmdb.DiscoverFilter{
			Genre:          genre,
			SortBy:         "popularity.desc",
			ReleasedAfter:  today,
			ReleasedBefore: horizon,
		})
		if err != nil {
			a.logger.Warn().Err(err).Str("genre", genre).Msg("Upcoming releases query failed, skipping genre")
			continue
		}
		for i := range candidates {
			key := strings.ToLower(strings.TrimSpace(candidates[i].Title))
			if key == "" {
				continue
			}
			if _, dup := seenTitles[key]; dup {
				continue
			}
			seenTitles[key] = struct{}{}
			upcoming = append(upcoming, candidates[i])
			if len(upcoming) >= a.config.UpcomingLimit {
				return upcoming
			}
		}
	}
	return upcoming
}

func releaseYearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
