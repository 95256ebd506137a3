// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the contribution of each scoring term.
	Weights Weights `json:"weights"`

	// Filters defines the candidate rejection thresholds.
	Filters Filters `json:"filters"`

	// Limits contains operational limits.
	Limits Limits `json:"limits"`
}

// Weights defines the additive scoring terms. All weights apply on the
// normalized 0-5 rating scale.
type Weights struct {
	// GenreMatch is added once per genre the candidate shares with the
	// profile's top genres. Not capped.
	GenreMatch float64 `json:"genre_match"`

	// DecadeMatch is added when the candidate's release decade appears in
	// the profile's decade affinity, regardless of that decade's mean.
	DecadeMatch float64 `json:"decade_match"`

	// Acclaim is added when the normalized public rating reaches
	// AcclaimThreshold.
	Acclaim float64 `json:"acclaim"`

	// AcclaimThreshold is the normalized rating at which a candidate
	// counts as critically acclaimed.
	AcclaimThreshold float64 `json:"acclaim_threshold"`

	// CertificateMatch is added when the candidate exposes a certificate
	// the profile prefers. Absence of certificate data contributes zero,
	// never a penalty.
	CertificateMatch float64 `json:"certificate_match"`
}

// Filters defines the explicit candidate rejection thresholds. There are
// no hidden defaults: every threshold is configuration.
type Filters struct {
	// MinVoteCount rejects sparse, unreliable candidates.
	MinVoteCount int `json:"min_vote_count"`

	// MinRating is the minimum normalized public rating on the 0-5 scale.
	MinRating float64 `json:"min_rating"`

	// MaxReleaseYear rejects candidates released after this year.
	// Zero means the current year at scoring time.
	MaxReleaseYear int `json:"max_release_year"`

	// ExcludedGenres rejects any candidate tagged with one of these.
	ExcludedGenres []string `json:"excluded_genres"`
}

// Limits contains operational limits.
type Limits struct {
	// TopGenreCount is how many of the profile's top genres participate
	// in genre-match scoring.
	TopGenreCount int `json:"top_genre_count"`

	// DefaultLimit is the result size when the caller does not ask for one.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit bounds the result size for browse-all views.
	MaxLimit int `json:"max_limit"`

	// MaxCandidatesPerSource stops draining a runaway source.
	MaxCandidatesPerSource int `json:"max_candidates_per_source"`
}

// DefaultConfig returns the canonical engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			GenreMatch:       1.5,
			DecadeMatch:      1.0,
			Acclaim:          1.0,
			AcclaimThreshold: 4.0,
			CertificateMatch: 0.5,
		},
		Filters: Filters{
			MinVoteCount:   1000,
			MinRating:      3.5,
			MaxReleaseYear: 0,
			ExcludedGenres: nil,
		},
		Limits: Limits{
			TopGenreCount:          5,
			DefaultLimit:           10,
			MaxLimit:               50,
			MaxCandidatesPerSource: 500,
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Weights.GenreMatch < 0 || c.Weights.DecadeMatch < 0 ||
		c.Weights.Acclaim < 0 || c.Weights.CertificateMatch < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.Weights.AcclaimThreshold < 0 || c.Weights.AcclaimThreshold > 5 {
		return fmt.Errorf("acclaim threshold must be within the 0-5 scale, got %v", c.Weights.AcclaimThreshold)
	}
	if c.Filters.MinVoteCount < 0 {
		return fmt.Errorf("min vote count must be non-negative, got %d", c.Filters.MinVoteCount)
	}
	if c.Filters.MinRating < 0 || c.Filters.MinRating > 5 {
		return fmt.Errorf("min rating must be within the 0-5 scale, got %v", c.Filters.MinRating)
	}
	if c.Limits.TopGenreCount < 1 {
		return fmt.Errorf("top genre count must be at least 1, got %d", c.Limits.TopGenreCount)
	}
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("default limit must be at least 1, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("max limit %d must be at least the default limit %d",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxCandidatesPerSource < 1 {
		return fmt.Errorf("max candidates per source must be at least 1, got %d", c.Limits.MaxCandidatesPerSource)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Filters.ExcludedGenres != nil {
		clone.Filters.ExcludedGenres = make([]string, len(c.Filters.ExcludedGenres))
		copy(clone.Filters.ExcludedGenres, c.Filters.ExcludedGenres)
	}
	return &clone
}
