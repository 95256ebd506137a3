// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"negative genre weight", func(c *Config) { c.Weights.GenreMatch = -1 }, true},
		{"acclaim threshold above scale", func(c *Config) { c.Weights.AcclaimThreshold = 7 }, true},
		{"negative vote count", func(c *Config) { c.Filters.MinVoteCount = -1 }, true},
		{"min rating above scale", func(c *Config) { c.Filters.MinRating = 6 }, true},
		{"zero top genres", func(c *Config) { c.Limits.TopGenreCount = 0 }, true},
		{"zero default limit", func(c *Config) { c.Limits.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 5 }, true},
		{"zero source cap", func(c *Config) { c.Limits.MaxCandidatesPerSource = 0 }, true},
		{"tightened but valid", func(c *Config) { c.Filters.MinVoteCount = 5000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Filters.ExcludedGenres = []string{"Horror"}

	clone := cfg.Clone()
	clone.Filters.ExcludedGenres[0] = "Comedy"
	clone.Weights.GenreMatch = 99

	if cfg.Filters.ExcludedGenres[0] != "Horror" {
		t.Error("Clone shares the excluded-genres slice with the original")
	}
	if cfg.Weights.GenreMatch != 1.5 {
		t.Error("Clone shares scalar fields with the original")
	}
}
