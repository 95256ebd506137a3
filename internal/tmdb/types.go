// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"time"

	"github.com/tomtom215/gustus/internal/models"
)

// FindResult is a public-rating resolution for one external identifier.
type FindResult struct {
	TMDBID       int     `json:"tmdb_id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	PublicRating float64 `json:"public_rating"`
}

// DiscoverFilter selects movies for a discover query.
type DiscoverFilter struct {
	// Genre is the genre name; it is translated to the service's numeric
	// genre ID. Unknown genres yield an empty result, not an error.
	Genre string

	// SortBy is the service sort key, e.g. "popularity.desc".
	SortBy string

	// ReleasedAfter / ReleasedBefore bound the primary release date.
	// Zero values leave the bound open.
	ReleasedAfter  time.Time
	ReleasedBefore time.Time

	// MinVotes is passed through to the service to pre-filter sparse
	// candidates server-side. The scorer applies its own threshold again.
	MinVotes int
}

// genreIDs maps genre names to the service's numeric genre IDs.
var genreIDs = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"TV Movie":        10770,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// genreNames is the inverse of genreIDs, for decoding genre_ids on
// discover and credits results.
var genreNames = func() map[int]string {
	m := make(map[int]string, len(genreIDs))
	for name, id := range genreIDs {
		m[id] = name
	}
	return m
}()

// movieResult is the wire shape of one movie in discover and credits
// responses.
type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids"`
}

// toCandidate converts a wire movie to the shared candidate type.
func (m *movieResult) toCandidate() models.CandidateMovie {
	var genres []string
	for _, id := range m.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}
	return models.CandidateMovie{
		Title:        m.Title,
		ReleaseDate:  m.ReleaseDate,
		PublicRating: m.VoteAverage,
		Genres:       genres,
		VoteCount:    m.VoteCount,
	}
}

// findResponse is the wire shape of /find/{external_id}.
type findResponse struct {
	MovieResults []movieResult `json:"movie_results"`
}

// discoverResponse is the wire shape of /discover/movie.
type discoverResponse struct {
	Results []movieResult `json:"results"`
}

// personSearchResponse is the wire shape of /search/person.
type personSearchResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

// creditsResponse is the wire shape of /person/{id}/movie_credits.
type creditsResponse struct {
	Cast []movieResult `json:"cast"`
	Crew []movieResult `json:"crew"`
}
