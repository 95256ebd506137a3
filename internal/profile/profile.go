// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package profile

import (
	"sort"
)

// AffinityStat is the aggregate for one bucket of an affinity table.
type AffinityStat struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`

	// PublicMean is the mean normalized public rating for the bucket,
	// present only where public ratings were resolved. Informational.
	PublicMean float64 `json:"public_mean,omitempty"`
}

// PreferenceProfile is the derived taste profile for one analysis run.
// It is immutable once built: consumers read it, nothing mutates it.
type PreferenceProfile struct {
	// GenreAffinity maps genre to mean personal rating.
	GenreAffinity map[string]AffinityStat `json:"genre_affinity"`

	// DirectorAffinity maps director to (film count, mean rating),
	// restricted to directors with at least two rated films.
	DirectorAffinity map[string]AffinityStat `json:"director_affinity"`

	// DecadeAffinity maps release decade to mean personal rating.
	// Records without a parseable year are excluded.
	DecadeAffinity map[int]AffinityStat `json:"decade_affinity"`

	// CountryAffinity maps country to mean rating, restricted to countries
	// with at least three films from at least two distinct directors.
	// Informational only; the scorer does not read it.
	CountryAffinity map[string]AffinityStat `json:"country_affinity,omitempty"`

	// CertificatePreference maps certificate to occurrence count, restricted
	// to certificates seen more than twice.
	CertificatePreference map[string]int `json:"certificate_preference,omitempty"`

	// MeanRuntime is the mean runtime in minutes across records that
	// carry one. RuntimeCount is the number of such records.
	MeanRuntime  float64 `json:"mean_runtime"`
	RuntimeCount int     `json:"runtime_count"`

	// RatedCount is the number of records with a personal rating.
	RatedCount int `json:"rated_count"`

	// SeenTitles is the lowercased set of every title in the log,
	// rated or not. The scorer rejects candidates whose title is here.
	SeenTitles map[string]struct{} `json:"-"`
}

// TopGenres returns up to n genres ordered by mean rating descending,
// ties broken by name ascending so the order is deterministic.
func (p *PreferenceProfile) TopGenres(n int) []string {
	return topStringKeys(p.GenreAffinity, n)
}

// TopDirectors returns up to n directors ordered by mean rating descending,
// ties broken by name ascending.
func (p *PreferenceProfile) TopDirectors(n int) []string {
	return topStringKeys(p.DirectorAffinity, n)
}

// TopDecades returns up to n decades ordered by mean rating descending,
// ties broken by decade ascending.
func (p *PreferenceProfile) TopDecades(n int) []int {
	decades := make([]int, 0, len(p.DecadeAffinity))
	for d := range p.DecadeAffinity {
		decades = append(decades, d)
	}
	sort.Slice(decades, func(i, j int) bool {
		si, sj := p.DecadeAffinity[decades[i]], p.DecadeAffinity[decades[j]]
		if si.Mean != sj.Mean {
			return si.Mean > sj.Mean
		}
		return decades[i] < decades[j]
	})
	if n > 0 && len(decades) > n {
		decades = decades[:n]
	}
	return decades
}

// HasDecade reports whether the decade appears in the affinity table,
// regardless of its mean rating.
func (p *PreferenceProfile) HasDecade(decade int) bool {
	_, ok := p.DecadeAffinity[decade]
	return ok
}

// PrefersCertificate reports whether the certificate passed the
// occurrence-count threshold.
func (p *PreferenceProfile) PrefersCertificate(cert string) bool {
	_, ok := p.CertificatePreference[cert]
	return ok
}

// HasSeen reports whether a title appears in the user's log,
// case-insensitively.
func (p *PreferenceProfile) HasSeen(title string) bool {
	_, ok := p.SeenTitles[normalizeTitle(title)]
	return ok
}

func topStringKeys(stats map[string]AffinityStat, n int) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := stats[keys[i]], stats[keys[j]]
		if si.Mean != sj.Mean {
			return si.Mean > sj.Mean
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
