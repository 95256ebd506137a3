// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package config provides layered configuration loading with Koanf v2.
// Precedence is environment variables over config file over built-in
// defaults. Validation uses go-playground/validator struct tags.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/gustus/internal/analysis"
	"github.com/tomtom215/gustus/internal/profile"
	"github.com/tomtom215/gustus/internal/recommend"
	"github.com/tomtom215/gustus/internal/tmdb"
	"github.com/tomtom215/gustus/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Cache     CacheConfig     `koanf:"cache"`
	Profile   ProfileConfig   `koanf:"profile"`
	Recommend RecommendConfig `koanf:"recommend"`
	Analysis  AnalysisConfig  `koanf:"analysis"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host" validate:"required"`
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	Environment string        `koanf:"environment" validate:"oneof=development production"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// TMDBConfig holds the metadata-service client settings. The API key has
// no default and must come from the environment or config file.
type TMDBConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	APIKey          string        `koanf:"api_key"`
	Timeout         time.Duration `koanf:"timeout" validate:"required"`
	RequestInterval time.Duration `koanf:"request_interval" validate:"required"`
	CircuitBreaker  bool          `koanf:"circuit_breaker"`
}

// CacheConfig holds the public-rating cache settings.
type CacheConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// ProfileConfig holds the preference-profile thresholds.
type ProfileConfig struct {
	MinDirectorFilms    int `koanf:"min_director_films" validate:"min=1"`
	CertificateMinCount int `koanf:"certificate_min_count" validate:"min=1"`
	CountryMinFilms     int `koanf:"country_min_films" validate:"min=1"`
	CountryMinDirectors int `koanf:"country_min_directors" validate:"min=1"`
}

// RecommendConfig holds the scoring weights, candidate filters, and
// ranking limits.
type RecommendConfig struct {
	GenreMatchWeight       float64  `koanf:"genre_match_weight" validate:"min=0"`
	DecadeMatchWeight      float64  `koanf:"decade_match_weight" validate:"min=0"`
	AcclaimWeight          float64  `koanf:"acclaim_weight" validate:"min=0"`
	AcclaimThreshold       float64  `koanf:"acclaim_threshold" validate:"min=0,max=5"`
	CertificateMatchWeight float64  `koanf:"certificate_match_weight" validate:"min=0"`
	MinVoteCount           int      `koanf:"min_vote_count" validate:"min=0"`
	MinRating              float64  `koanf:"min_rating" validate:"min=0,max=5"`
	MaxReleaseYear         int      `koanf:"max_release_year" validate:"min=0"`
	ExcludedGenres         []string `koanf:"excluded_genres"`
	TopGenreCount          int      `koanf:"top_genre_count" validate:"min=1"`
	DefaultLimit           int      `koanf:"default_limit" validate:"min=1"`
	MaxLimit               int      `koanf:"max_limit" validate:"min=1"`
	MaxCandidatesPerSource int      `koanf:"max_candidates_per_source" validate:"min=1"`
}

// AnalysisConfig holds the orchestration settings.
type AnalysisConfig struct {
	TopDirectorSources   int `koanf:"top_director_sources" validate:"min=0"`
	UpcomingWindowMonths int `koanf:"upcoming_window_months" validate:"min=1"`
	UpcomingLimit        int `koanf:"upcoming_limit" validate:"min=1"`
}

// APIConfig holds the cross-cutting HTTP settings.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"required"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// defaultConfig returns a Config with all defaults applied. These are
// overridden by the config file and then by environment variables.
func defaultConfig() *Config {
	tmdbDefaults := tmdb.DefaultConfig()
	builderDefaults := profile.DefaultBuilderConfig()
	engineDefaults := recommend.DefaultConfig()
	analysisDefaults := analysis.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8642,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		TMDB: TMDBConfig{
			BaseURL:         tmdbDefaults.BaseURL,
			APIKey:          "",
			Timeout:         tmdbDefaults.Timeout,
			RequestInterval: tmdbDefaults.RequestInterval,
			CircuitBreaker:  true,
		},
		Cache: CacheConfig{
			Path: "/data/public_ratings.csv",
		},
		Profile: ProfileConfig{
			MinDirectorFilms:    builderDefaults.MinDirectorFilms,
			CertificateMinCount: builderDefaults.CertificateMinCount,
			CountryMinFilms:     builderDefaults.CountryMinFilms,
			CountryMinDirectors: builderDefaults.CountryMinDirectors,
		},
		Recommend: RecommendConfig{
			GenreMatchWeight:       engineDefaults.Weights.GenreMatch,
			DecadeMatchWeight:      engineDefaults.Weights.DecadeMatch,
			AcclaimWeight:          engineDefaults.Weights.Acclaim,
			AcclaimThreshold:       engineDefaults.Weights.AcclaimThreshold,
			CertificateMatchWeight: engineDefaults.Weights.CertificateMatch,
			MinVoteCount:           engineDefaults.Filters.MinVoteCount,
			MinRating:              engineDefaults.Filters.MinRating,
			MaxReleaseYear:         engineDefaults.Filters.MaxReleaseYear,
			ExcludedGenres:         engineDefaults.Filters.ExcludedGenres,
			TopGenreCount:          engineDefaults.Limits.TopGenreCount,
			DefaultLimit:           engineDefaults.Limits.DefaultLimit,
			MaxLimit:               engineDefaults.Limits.MaxLimit,
			MaxCandidatesPerSource: engineDefaults.Limits.MaxCandidatesPerSource,
		},
		Analysis: AnalysisConfig{
			TopDirectorSources:   analysisDefaults.TopDirectorSources,
			UpcomingWindowMonths: analysisDefaults.UpcomingWindowMonths,
			UpcomingLimit:        analysisDefaults.UpcomingLimit,
		},
		API: APIConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{},
		},
	}
}

// Validate checks the configuration using validator struct tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}
	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("recommend default limit %d exceeds max limit %d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	if c.Server.Environment == "production" && c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB API key is required in production")
	}
	return nil
}

// TMDBClientConfig converts the section to the metadata client's config.
func (c *Config) TMDBClientConfig() tmdb.Config {
	return tmdb.Config{
		BaseURL:         c.TMDB.BaseURL,
		APIKey:          c.TMDB.APIKey,
		Timeout:         c.TMDB.Timeout,
		RequestInterval: c.TMDB.RequestInterval,
	}
}

// BuilderConfig converts the section to the profile builder's config.
func (c *Config) BuilderConfig() profile.BuilderConfig {
	return profile.BuilderConfig{
		MinDirectorFilms:    c.Profile.MinDirectorFilms,
		CertificateMinCount: c.Profile.CertificateMinCount,
		CountryMinFilms:     c.Profile.CountryMinFilms,
		CountryMinDirectors: c.Profile.CountryMinDirectors,
	}
}

// EngineConfig converts the section to the recommendation engine's config.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			GenreMatch:       c.Recommend.GenreMatchWeight,
			DecadeMatch:      c.Recommend.DecadeMatchWeight,
			Acclaim:          c.Recommend.AcclaimWeight,
			AcclaimThreshold: c.Recommend.AcclaimThreshold,
			CertificateMatch: c.Recommend.CertificateMatchWeight,
		},
		Filters: recommend.Filters{
			MinVoteCount:   c.Recommend.MinVoteCount,
			MinRating:      c.Recommend.MinRating,
			MaxReleaseYear: c.Recommend.MaxReleaseYear,
			ExcludedGenres: c.Recommend.ExcludedGenres,
		},
		Limits: recommend.Limits{
			TopGenreCount:          c.Recommend.TopGenreCount,
			DefaultLimit:           c.Recommend.DefaultLimit,
			MaxLimit:               c.Recommend.MaxLimit,
			MaxCandidatesPerSource: c.Recommend.MaxCandidatesPerSource,
		},
	}
}

// AnalysisRunConfig converts the section to the analyzer's config.
func (c *Config) AnalysisRunConfig() analysis.Config {
	return analysis.Config{
		TopDirectorSources:   c.Analysis.TopDirectorSources,
		UpcomingWindowMonths: c.Analysis.UpcomingWindowMonths,
		UpcomingLimit:        c.Analysis.UpcomingLimit,
	}
}
