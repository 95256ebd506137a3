// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/gustus/internal/models"
	"github.com/tomtom215/gustus/internal/profile"
)

// filterSet is the compiled form of Filters for one scoring run.
type filterSet struct {
	minVotes  int
	minRating float64
	maxYear   int
	excluded  map[string]struct{}
}

func newFilterSet(f Filters, currentYear int) filterSet {
	fs := filterSet{
		minVotes:  f.MinVoteCount,
		minRating: f.MinRating,
		maxYear:   f.MaxReleaseYear,
	}
	if fs.maxYear == 0 {
		fs.maxYear = currentYear
	}
	if len(f.ExcludedGenres) > 0 {
		fs.excluded = make(map[string]struct{}, len(f.ExcludedGenres))
		for _, g := range f.ExcludedGenres {
			fs.excluded[g] = struct{}{}
		}
	}
	return fs
}

// scoreCandidate applies the rejection sequence and, for survivors, the
// additive scoring terms. Returns ok=false when the candidate is rejected.
//
// The rejection sequence is fixed and short-circuits: empty title, seen
// title, vote count or missing release date, excluded genre, then the
// rating and year thresholds. A candidate rejected at an early stage never
// reaches scoring.
func scoreCandidate(c *models.CandidateMovie, p *profile.PreferenceProfile, topGenres map[string]struct{}, w Weights, fs filterSet) (ScoredRecommendation, bool) {
	if c.Title == "" {
		return ScoredRecommendation{}, false
	}
	if p.HasSeen(c.Title) {
		return ScoredRecommendation{}, false
	}
	year, hasYear := releaseYear(c.ReleaseDate)
	if c.VoteCount < fs.minVotes || !hasYear {
		return ScoredRecommendation{}, false
	}
	for _, g := range c.Genres {
		if _, excluded := fs.excluded[g]; excluded {
			return ScoredRecommendation{}, false
		}
	}
	normalized := profile.NormalizePublicRating(c.PublicRating)
	if normalized < fs.minRating || year > fs.maxYear {
		return ScoredRecommendation{}, false
	}

	// Scoring terms run in a fixed order so the reason list is
	// deterministic: genres, decade, acclaim, certificate.
	var score float64
	var reasons []string

	var matched []string
	for _, g := range c.Genres {
		if _, ok := topGenres[g]; ok {
			matched = append(matched, g)
		}
	}
	if len(matched) > 0 {
		score += w.GenreMatch * float64(len(matched))
		reasons = append(reasons, "Top genres: "+strings.Join(matched, ", "))
	}

	if decade := profile.Decade(year); p.HasDecade(decade) {
		score += w.DecadeMatch
		reasons = append(reasons, fmt.Sprintf("Matches your %ds taste", decade))
	}

	if normalized >= w.AcclaimThreshold {
		score += w.Acclaim
		reasons = append(reasons, "Critically acclaimed")
	}

	if c.Certificate != "" && p.PrefersCertificate(c.Certificate) {
		score += w.CertificateMatch
		reasons = append(reasons, "Preferred certificate: "+c.Certificate)
	}

	return ScoredRecommendation{
		Title:            c.Title,
		ReleaseDate:      c.ReleaseDate,
		NormalizedRating: normalized,
		Score:            score,
		Reasons:          reasons,
		Why:              strings.Join(reasons, ", "),
	}, true
}

// releaseYear parses the year out of a YYYY-MM-DD release date. An empty
// or unparseable date counts as missing.
func releaseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}
