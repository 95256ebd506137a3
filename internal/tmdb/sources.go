// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"context"
	"fmt"

	"github.com/tomtom215/gustus/internal/models"
)

// GenreSource pulls discover results for a single genre. The fetch is
// deferred until the first Next call so that constructing sources for a
// run costs nothing until the engine drains them. Sources are
// single-pass: once exhausted they stay exhausted.
type GenreSource struct {
	client MetadataClient
	genre  string
	filter DiscoverFilter

	fetched bool
	items   []models.CandidateMovie
	pos     int
}

// NewGenreSource creates a source backed by a discover query for genre.
// The filter's Genre field is overwritten with the given genre.
func NewGenreSource(client MetadataClient, genre string, filter DiscoverFilter) *GenreSource {
	filter.Genre = genre
	return &GenreSource{client: client, genre: genre, filter: filter}
}

// Name identifies the source in response attributions and logs.
func (s *GenreSource) Name() string {
	return "genre:" + s.genre
}

// Next returns the next candidate. The second return value is false when
// the source is exhausted. A fetch error is returned once; subsequent
// calls report exhaustion.
func (s *GenreSource) Next(ctx context.Context) (models.CandidateMovie, bool, error) {
	if !s.fetched {
		s.fetched = true
		items, err := s.client.Discover(ctx, s.filter)
		if err != nil {
			return models.CandidateMovie{}, false, fmt.Errorf("discover %s: %w", s.genre, err)
		}
		s.items = items
	}
	if s.pos >= len(s.items) {
		return models.CandidateMovie{}, false, nil
	}
	c := s.items[s.pos]
	s.pos++
	return c, true, nil
}

// PersonSource pulls the filmography of a single person, typically a
// director from the profile's affinity list. Like GenreSource it fetches
// lazily and is single-pass. Both the person search and the credits
// lookup happen on the first Next call; an unmatched name is treated as
// an empty source rather than an error.
type PersonSource struct {
	client MetadataClient
	name   string

	fetched bool
	items   []models.CandidateMovie
	pos     int
}

// NewPersonSource creates a source backed by the credited movies of the
// named person.
func NewPersonSource(client MetadataClient, name string) *PersonSource {
	return &PersonSource{client: client, name: name}
}

// Name identifies the source in response attributions and logs.
func (s *PersonSource) Name() string {
	return "person:" + s.name
}

// Next returns the next candidate, or exhaustion when none remain.
func (s *PersonSource) Next(ctx context.Context) (models.CandidateMovie, bool, error) {
	if !s.fetched {
		s.fetched = true
		if err := s.fetch(ctx); err != nil {
			return models.CandidateMovie{}, false, err
		}
	}
	if s.pos >= len(s.items) {
		return models.CandidateMovie{}, false, nil
	}
	c := s.items[s.pos]
	s.pos++
	return c, true, nil
}

func (s *PersonSource) fetch(ctx context.Context) error {
	personID, found, err := s.client.SearchPerson(ctx, s.name)
	if err != nil {
		return fmt.Errorf("search person %q: %w", s.name, err)
	}
	if !found {
		return nil
	}
	items, err := s.client.PersonMovieCredits(ctx, personID)
	if err != nil {
		return fmt.Errorf("credits for %q: %w", s.name, err)
	}
	s.items = items
	return nil
}
