// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gustus/config.yaml",
	"/etc/gustus/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists the config paths that may arrive from the
// environment as comma-separated strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
	"recommend.excluded_genres",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields. Values that are already slices (from YAML)
// pass through untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps flat environment variable names to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_host":         "server.host",
	"http_port":         "server.port",
	"http_timeout":      "server.timeout",
	"environment":       "server.environment",
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"log_caller":        "logging.caller",
	"tmdb_base_url":     "tmdb.base_url",
	"tmdb_api_key":      "tmdb.api_key",
	"tmdb_timeout":      "tmdb.timeout",
	"tmdb_interval":     "tmdb.request_interval",
	"tmdb_breaker":      "tmdb.circuit_breaker",
	"rating_cache_path": "cache.path",

	"profile_min_director_films":    "profile.min_director_films",
	"profile_certificate_min_count": "profile.certificate_min_count",
	"profile_country_min_films":     "profile.country_min_films",
	"profile_country_min_directors": "profile.country_min_directors",

	"recommend_genre_weight":       "recommend.genre_match_weight",
	"recommend_decade_weight":      "recommend.decade_match_weight",
	"recommend_acclaim_weight":     "recommend.acclaim_weight",
	"recommend_acclaim_threshold":  "recommend.acclaim_threshold",
	"recommend_certificate_weight": "recommend.certificate_match_weight",
	"recommend_min_vote_count":     "recommend.min_vote_count",
	"recommend_min_rating":         "recommend.min_rating",
	"recommend_max_release_year":   "recommend.max_release_year",
	"recommend_excluded_genres":    "recommend.excluded_genres",
	"recommend_top_genre_count":    "recommend.top_genre_count",
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_max_limit":          "recommend.max_limit",
	"recommend_max_candidates":     "recommend.max_candidates_per_source",

	"analysis_top_director_sources":   "analysis.top_director_sources",
	"analysis_upcoming_window_months": "analysis.upcoming_window_months",
	"analysis_upcoming_limit":         "analysis.upcoming_limit",

	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"rate_limit_disabled": "api.rate_limit_disabled",
	"cors_origins":        "api.cors_origins",
}

// envTransformFunc maps environment variable names to koanf config
// paths. Returning "" drops the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
