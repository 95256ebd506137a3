// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/gustus/internal/models"
)

// CandidateSource produces a lazy, finite sequence of candidate movies.
// Sources back onto the metadata service (one discover query, one person
// filmography) and issue no requests until Next is first called. A source
// is not restartable: draining it again requires a fresh instance.
type CandidateSource interface {
	// Name identifies the source in logs and response metadata.
	Name() string

	// Next returns the next candidate. The second return value is false
	// when the source is exhausted. An error ends the source; the engine
	// treats it as "zero further candidates from this source".
	Next(ctx context.Context) (models.CandidateMovie, bool, error)
}

// ScoredRecommendation is one surviving candidate with its composite score
// and the reasons that produced it. Immutable after creation; the engine
// owns creation and ordering.
type ScoredRecommendation struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`

	// NormalizedRating is the public rating rescaled to the 0-5 scale.
	NormalizedRating float64 `json:"normalized_rating"`

	// Score is the nonnegative composite score.
	Score float64 `json:"score"`

	// Reasons lists the contributing terms in the fixed scoring order.
	Reasons []string `json:"reasons"`

	// Why is the comma-joined rendering of Reasons.
	Why string `json:"why"`
}

// Response is the result of one recommendation run.
type Response struct {
	// Items is the ranked recommendation list, highest score first.
	Items []ScoredRecommendation `json:"items"`

	// TotalCandidates counts every candidate pulled from all sources,
	// including rejected ones.
	TotalCandidates int `json:"total_candidates"`

	// Rejected counts candidates eliminated by the filter sequence.
	Rejected int `json:"rejected"`

	// SourceErrors counts sources that failed mid-drain and were skipped.
	SourceErrors int `json:"source_errors,omitempty"`

	// Sources names the candidate sources consulted, in order.
	Sources []string `json:"sources,omitempty"`

	// GeneratedAt is when the run completed.
	GeneratedAt time.Time `json:"generated_at"`
}
