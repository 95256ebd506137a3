// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package models

// CandidateMovie is a movie fetched from the external metadata service.
// Candidates are ephemeral: they live for the duration of one analysis run
// and are never persisted.
//
// PublicRating is on the service's native 0-10 scale; the scorer normalizes
// it to 0-5 before applying thresholds. ReleaseDate is the raw YYYY-MM-DD
// string from the service; an empty value means the release date is unknown
// and the candidate is rejected by the vote/date filter.
type CandidateMovie struct {
	Title        string   `json:"title"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	PublicRating float64  `json:"public_rating"`
	Genres       []string `json:"genres,omitempty"`
	VoteCount    int      `json:"vote_count"`
	Certificate  string   `json:"certificate,omitempty"`
}
