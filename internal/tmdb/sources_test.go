// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/gustus/internal/models"
)

// fakeMetadataClient is an in-memory MetadataClient for source tests.
type fakeMetadataClient struct {
	discoverResult []models.CandidateMovie
	discoverErr    error
	discoverCalls  int
	lastFilter     DiscoverFilter

	personID      int
	personFound   bool
	personErr     error
	creditsResult []models.CandidateMovie
	creditsErr    error
	creditsCalls  int
}

func (f *fakeMetadataClient) FindByExternalID(_ context.Context, _ string) (*FindResult, error) {
	return nil, nil
}

func (f *fakeMetadataClient) Discover(_ context.Context, filter DiscoverFilter) ([]models.CandidateMovie, error) {
	f.discoverCalls++
	f.lastFilter = filter
	return f.discoverResult, f.discoverErr
}

func (f *fakeMetadataClient) SearchPerson(_ context.Context, _ string) (int, bool, error) {
	return f.personID, f.personFound, f.personErr
}

func (f *fakeMetadataClient) PersonMovieCredits(_ context.Context, _ int) ([]models.CandidateMovie, error) {
	f.creditsCalls++
	return f.creditsResult, f.creditsErr
}

func TestGenreSourceDrains(t *testing.T) {
	t.Parallel()

	fake := &fakeMetadataClient{
		discoverResult: []models.CandidateMovie{
			{Title: "Alien"},
			{Title: "Blade Runner"},
		},
	}
	src := NewGenreSource(fake, "Science Fiction", DiscoverFilter{SortBy: "popularity.desc"})

	if src.Name() != "genre:Science Fiction" {
		t.Errorf("Name() = %q", src.Name())
	}

	ctx := context.Background()
	var titles []string
	for {
		c, ok, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		titles = append(titles, c.Title)
	}

	if len(titles) != 2 || titles[0] != "Alien" || titles[1] != "Blade Runner" {
		t.Errorf("titles = %v", titles)
	}
	if fake.discoverCalls != 1 {
		t.Errorf("discoverCalls = %d, want 1 (lazy single fetch)", fake.discoverCalls)
	}
	if fake.lastFilter.Genre != "Science Fiction" {
		t.Errorf("filter genre = %q, want Science Fiction", fake.lastFilter.Genre)
	}

	// Exhausted stays exhausted.
	if _, ok, err := src.Next(ctx); ok || err != nil {
		t.Errorf("Next after exhaustion = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestGenreSourceNoFetchBeforeFirstNext(t *testing.T) {
	t.Parallel()

	fake := &fakeMetadataClient{}
	NewGenreSource(fake, "Drama", DiscoverFilter{})

	if fake.discoverCalls != 0 {
		t.Errorf("discoverCalls = %d before first Next, want 0", fake.discoverCalls)
	}
}

func TestGenreSourceFetchError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("service down")
	fake := &fakeMetadataClient{discoverErr: sentinel}
	src := NewGenreSource(fake, "Drama", DiscoverFilter{})

	_, _, err := src.Next(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("Next err = %v, want wrapped sentinel", err)
	}

	// The error is reported once; afterwards the source is exhausted
	// and no second fetch is attempted.
	if _, ok, err := src.Next(context.Background()); ok || err != nil {
		t.Errorf("second Next = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
	if fake.discoverCalls != 1 {
		t.Errorf("discoverCalls = %d, want 1", fake.discoverCalls)
	}
}

func TestPersonSourceDrains(t *testing.T) {
	t.Parallel()

	fake := &fakeMetadataClient{
		personID:    39996,
		personFound: true,
		creditsResult: []models.CandidateMovie{
			{Title: "12 Angry Men"},
			{Title: "Network"},
		},
	}
	src := NewPersonSource(fake, "Sidney Lumet")

	if src.Name() != "person:Sidney Lumet" {
		t.Errorf("Name() = %q", src.Name())
	}

	ctx := context.Background()
	var titles []string
	for {
		c, ok, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		titles = append(titles, c.Title)
	}

	if len(titles) != 2 || titles[0] != "12 Angry Men" {
		t.Errorf("titles = %v", titles)
	}
	if fake.creditsCalls != 1 {
		t.Errorf("creditsCalls = %d, want 1", fake.creditsCalls)
	}
}

func TestPersonSourceUnmatchedNameIsEmpty(t *testing.T) {
	t.Parallel()

	fake := &fakeMetadataClient{personFound: false}
	src := NewPersonSource(fake, "Nobody At All")

	_, ok, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Error("expected empty source for unmatched name")
	}
	if fake.creditsCalls != 0 {
		t.Errorf("creditsCalls = %d, want 0 for unmatched name", fake.creditsCalls)
	}
}

func TestPersonSourceSearchError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("service down")
	fake := &fakeMetadataClient{personErr: sentinel}
	src := NewPersonSource(fake, "Sidney Lumet")

	if _, _, err := src.Next(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("Next err = %v, want wrapped sentinel", err)
	}
}
