// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package models

// WatchRecord is one row of the user's watch log.
//
// Title is the record key and is always non-empty; rows without a title are
// dropped during ingestion. Numeric fields that failed to parse are left as
// nil pointers so aggregates can exclude them without guessing defaults.
// Multi-valued fields (Genres, Directors, Cast, Countries) are already split
// into individual values by the ingest layer.
type WatchRecord struct {
	Title       string   `json:"title"`
	Year        *int     `json:"year,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Directors   []string `json:"directors,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	RuntimeMins *int     `json:"runtime_mins,omitempty"`
	Certificate string   `json:"certificate,omitempty"`

	// ExternalID is a cross-service identifier (IMDb-style) used to join
	// the log against the public-rating cache. Optional.
	ExternalID string `json:"external_id,omitempty"`
}

// HasRating reports whether the record carries a personal rating.
func (r *WatchRecord) HasRating() bool {
	return r.Rating != nil
}
