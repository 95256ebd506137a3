// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:         srv.URL,
		APIKey:          "test-key",
		Timeout:         5 * time.Second,
		RequestInterval: time.Millisecond,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing base URL", Config{APIKey: "k"}},
		{"missing API key", Config{BaseURL: "http://localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewClient(tt.cfg, zerolog.Nop()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFindByExternalID(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"movie_results":[{"id":238,"title":"The Godfather","release_date":"1972-03-14","vote_average":8.7,"vote_count":21000}]}`))
	})

	result, err := client.FindByExternalID(context.Background(), "tt0068646")
	if err != nil {
		t.Fatalf("FindByExternalID: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if gotPath != "/find/tt0068646" {
		t.Errorf("path = %q, want /find/tt0068646", gotPath)
	}
	if gotQuery.Get("external_source") != "imdb_id" {
		t.Errorf("external_source = %q, want imdb_id", gotQuery.Get("external_source"))
	}
	if gotQuery.Get("api_key") != "test-key" {
		t.Errorf("api_key = %q, want test-key", gotQuery.Get("api_key"))
	}
	if result.TMDBID != 238 || result.Title != "The Godfather" || result.PublicRating != 8.7 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestFindByExternalIDNoMatch(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"movie_results":[]}`))
	})

	result, err := client.FindByExternalID(context.Background(), "tt9999999")
	if err != nil {
		t.Fatalf("FindByExternalID: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for no match, got %+v", result)
	}
}

func TestFindByExternalIDEmptyID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be made for an empty ID")
	})

	if _, err := client.FindByExternalID(context.Background(), ""); err == nil {
		t.Error("expected error for empty external ID")
	}
}

func TestGetReturnsAPIErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status_message":"rate limited"}`))
	})

	_, err := client.FindByExternalID(context.Background(), "tt0068646")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1 (no retry)", calls)
	}
}

func TestDiscoverQueryParameters(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Heat","release_date":"1995-12-15","vote_average":8.3,"vote_count":7000,"genre_ids":[80,18,53]}]}`))
	})

	filter := DiscoverFilter{
		Genre:          "Crime",
		SortBy:         "popularity.desc",
		ReleasedAfter:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		ReleasedBefore: time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		MinVotes:       1000,
	}
	candidates, err := client.Discover(context.Background(), filter)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := map[string]string{
		"with_genres":              "80",
		"sort_by":                  "popularity.desc",
		"primary_release_date.gte": "1990-01-01",
		"primary_release_date.lte": "1999-12-31",
		"vote_count.gte":           "1000",
	}
	for k, v := range want {
		if got := gotQuery.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}

	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	c := candidates[0]
	if c.Title != "Heat" || c.VoteCount != 7000 {
		t.Errorf("unexpected candidate: %+v", c)
	}
	wantGenres := []string{"Crime", "Drama", "Thriller"}
	if len(c.Genres) != len(wantGenres) {
		t.Fatalf("Genres = %v, want %v", c.Genres, wantGenres)
	}
	for i, g := range wantGenres {
		if c.Genres[i] != g {
			t.Errorf("Genres[%d] = %q, want %q", i, c.Genres[i], g)
		}
	}
}

func TestDiscoverUnknownGenre(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be made for an unknown genre")
	})

	candidates, err := client.Discover(context.Background(), DiscoverFilter{Genre: "Mumblecore"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if candidates != nil {
		t.Errorf("expected nil candidates, got %v", candidates)
	}
}

func TestSearchPerson(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "Sidney Lumet" {
			t.Errorf("query = %q, want Sidney Lumet", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":39996,"name":"Sidney Lumet"},{"id":1,"name":"Other"}]}`))
	})

	id, found, err := client.SearchPerson(context.Background(), "Sidney Lumet")
	if err != nil {
		t.Fatalf("SearchPerson: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if id != 39996 {
		t.Errorf("id = %d, want 39996 (first result wins)", id)
	}
}

func TestSearchPersonNoMatch(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, found, err := client.SearchPerson(context.Background(), "Nobody At All")
	if err != nil {
		t.Fatalf("SearchPerson: %v", err)
	}
	if found {
		t.Error("expected no match")
	}
}

func TestPersonMovieCreditsDeduplicates(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/39996/movie_credits" {
			t.Errorf("path = %q, want /person/39996/movie_credits", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"crew":[
				{"id":10,"title":"12 Angry Men","release_date":"1957-04-10","vote_average":8.5,"vote_count":9000,"genre_ids":[18]},
				{"id":11,"title":"Network","release_date":"1976-11-27","vote_average":8.0,"vote_count":3000,"genre_ids":[18]}
			],
			"cast":[
				{"id":10,"title":"12 Angry Men","release_date":"1957-04-10","vote_average":8.5,"vote_count":9000,"genre_ids":[18]},
				{"id":12,"title":"Serpico","release_date":"1973-12-05","vote_average":7.7,"vote_count":2000,"genre_ids":[80,18]}
			]
		}`))
	})

	candidates, err := client.PersonMovieCredits(context.Background(), 39996)
	if err != nil {
		t.Fatalf("PersonMovieCredits: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("len(candidates) = %d, want 3 after dedupe", len(candidates))
	}
	// Crew entries come first, then cast entries not already seen.
	wantTitles := []string{"12 Angry Men", "Network", "Serpico"}
	for i, title := range wantTitles {
		if candidates[i].Title != title {
			t.Errorf("candidates[%d].Title = %q, want %q", i, candidates[i].Title, title)
		}
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := client.SearchPerson(ctx, "Anyone"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
