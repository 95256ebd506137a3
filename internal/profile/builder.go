// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package profile

import (
	"fmt"
	"strings"

	"github.com/tomtom215/gustus/internal/models"
)

// BuilderConfig holds the support thresholds for profile aggregation.
// The defaults are the canonical values; they exist as configuration so
// deployments can tighten them, not to invite loosening below the
// single-data-point floor.
type BuilderConfig struct {
	// MinDirectorFilms is the minimum film count for a director to enter
	// the affinity table. Single-film directors are excluded to avoid
	// overfitting to one data point.
	MinDirectorFilms int

	// CertificateMinCount is the occurrence count a certificate must
	// strictly exceed to be considered preferred.
	CertificateMinCount int

	// CountryMinFilms and CountryMinDirectors gate the country affinity
	// table. A country needs both enough films and enough distinct
	// directors, otherwise it measures director taste, not country taste.
	CountryMinFilms     int
	CountryMinDirectors int
}

// DefaultBuilderConfig returns the canonical thresholds.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		MinDirectorFilms:    2,
		CertificateMinCount: 2,
		CountryMinFilms:     3,
		CountryMinDirectors: 2,
	}
}

// Validate checks the configuration for invalid values.
func (c BuilderConfig) Validate() error {
	if c.MinDirectorFilms < 1 {
		return fmt.Errorf("min director films must be at least 1, got %d", c.MinDirectorFilms)
	}
	if c.CertificateMinCount < 0 {
		return fmt.Errorf("certificate min count must be non-negative, got %d", c.CertificateMinCount)
	}
	if c.CountryMinFilms < 1 {
		return fmt.Errorf("country min films must be at least 1, got %d", c.CountryMinFilms)
	}
	if c.CountryMinDirectors < 1 {
		return fmt.Errorf("country min directors must be at least 1, got %d", c.CountryMinDirectors)
	}
	return nil
}

// Builder aggregates watch records into a PreferenceProfile.
type Builder struct {
	cfg BuilderConfig
}

// NewBuilder creates a Builder with the given thresholds.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid builder config: %w", err)
	}
	return &Builder{cfg: cfg}, nil
}

// Build derives a PreferenceProfile from the watch log. Only records with a
// personal rating contribute to the affinity tables; every record, rated or
// not, contributes its title to the seen set.
//
// publicRatings maps external identifiers to public ratings on the 0-10
// scale, typically the cache snapshot merged with fresh lookups. It feeds
// the informational public mean per genre and may be nil.
//
// Build is a pure function of its inputs: no side effects, no retained
// references to the record slice.
func (b *Builder) Build(records []models.WatchRecord, publicRatings map[string]float64) *PreferenceProfile {
	p := &PreferenceProfile{
		SeenTitles: make(map[string]struct{}, len(records)),
	}

	rated := make([]models.WatchRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.Title != "" {
			p.SeenTitles[normalizeTitle(r.Title)] = struct{}{}
		}
		if r.HasRating() {
			rated = append(rated, *r)
		}
	}
	p.RatedCount = len(rated)

	p.GenreAffinity = groupStats(explodeRated(rated, func(r *models.WatchRecord) []string {
		return r.Genres
	}))
	b.addPublicMeans(p.GenreAffinity, rated, publicRatings)

	p.DirectorAffinity = filterByCount(groupStats(explodeRated(rated, func(r *models.WatchRecord) []string {
		return r.Directors
	})), b.cfg.MinDirectorFilms)

	p.DecadeAffinity = b.buildDecadeAffinity(rated)
	p.CountryAffinity = b.buildCountryAffinity(rated)
	p.CertificatePreference = b.buildCertificatePreference(rated)

	var runtimeSum int
	for i := range rated {
		if rated[i].RuntimeMins != nil {
			runtimeSum += *rated[i].RuntimeMins
			p.RuntimeCount++
		}
	}
	if p.RuntimeCount > 0 {
		p.MeanRuntime = float64(runtimeSum) / float64(p.RuntimeCount)
	}

	return p
}

// ratedValue is one exploded (value, rating) row.
type ratedValue struct {
	value  string
	rating float64
}

// explodeRated turns each record into one row per value of a multi-valued
// field. A film tagged with three genres contributes its rating to all
// three genre buckets independently; this is per-value rating signal, not
// dilution.
func explodeRated(records []models.WatchRecord, field func(*models.WatchRecord) []string) []ratedValue {
	var rows []ratedValue
	for i := range records {
		r := &records[i]
		for _, v := range field(r) {
			if v == "" {
				continue
			}
			rows = append(rows, ratedValue{value: v, rating: *r.Rating})
		}
	}
	return rows
}

// groupStats reduces exploded rows to per-value count and mean.
func groupStats(rows []ratedValue) map[string]AffinityStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range rows {
		sums[row.value] += row.rating
		counts[row.value]++
	}

	stats := make(map[string]AffinityStat, len(counts))
	for v, n := range counts {
		stats[v] = AffinityStat{Count: n, Mean: sums[v] / float64(n)}
	}
	return stats
}

func filterByCount(stats map[string]AffinityStat, minCount int) map[string]AffinityStat {
	out := make(map[string]AffinityStat, len(stats))
	for v, s := range stats {
		if s.Count >= minCount {
			out[v] = s
		}
	}
	return out
}

func (b *Builder) buildDecadeAffinity(rated []models.WatchRecord) map[int]AffinityStat {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := range rated {
		r := &rated[i]
		if r.Year == nil {
			continue
		}
		d := Decade(*r.Year)
		sums[d] += *r.Rating
		counts[d]++
	}

	stats := make(map[int]AffinityStat, len(counts))
	for d, n := range counts {
		stats[d] = AffinityStat{Count: n, Mean: sums[d] / float64(n)}
	}
	return stats
}

func (b *Builder) buildCountryAffinity(rated []models.WatchRecord) map[string]AffinityStat {
	stats := groupStats(explodeRated(rated, func(r *models.WatchRecord) []string {
		return r.Countries
	}))

	// Track distinct directors per country for the double filter.
	directors := make(map[string]map[string]struct{})
	for i := range rated {
		r := &rated[i]
		for _, c := range r.Countries {
			if directors[c] == nil {
				directors[c] = make(map[string]struct{})
			}
			for _, d := range r.Directors {
				directors[c][d] = struct{}{}
			}
		}
	}

	out := make(map[string]AffinityStat, len(stats))
	for c, s := range stats {
		if s.Count >= b.cfg.CountryMinFilms && len(directors[c]) >= b.cfg.CountryMinDirectors {
			out[c] = s
		}
	}
	return out
}

func (b *Builder) buildCertificatePreference(rated []models.WatchRecord) map[string]int {
	counts := make(map[string]int)
	for i := range rated {
		if cert := rated[i].Certificate; cert != "" {
			counts[cert]++
		}
	}

	out := make(map[string]int, len(counts))
	for cert, n := range counts {
		if n > b.cfg.CertificateMinCount {
			out[cert] = n
		}
	}
	return out
}

// addPublicMeans fills the informational public mean per genre from
// resolved public ratings. Records without a resolved rating are skipped.
func (b *Builder) addPublicMeans(stats map[string]AffinityStat, rated []models.WatchRecord, publicRatings map[string]float64) {
	if len(publicRatings) == 0 {
		return
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range rated {
		r := &rated[i]
		public, ok := publicRatings[r.ExternalID]
		if r.ExternalID == "" || !ok {
			continue
		}
		for _, g := range r.Genres {
			sums[g] += NormalizePublicRating(public)
			counts[g]++
		}
	}

	for g, n := range counts {
		if s, ok := stats[g]; ok {
			s.PublicMean = sums[g] / float64(n)
			stats[g] = s
		}
	}
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
