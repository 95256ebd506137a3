// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"reflect"
	"testing"
)

func rankTitles(items []ScoredRecommendation) []string {
	titles := make([]string, len(items))
	for i := range items {
		titles[i] = items[i].Title
	}
	return titles
}

func TestRankSortsDescending(t *testing.T) {
	t.Parallel()

	input := []ScoredRecommendation{
		{Title: "Low", Score: 1.0},
		{Title: "High", Score: 4.5},
		{Title: "Mid", Score: 2.5},
	}

	got := rankTitles(Rank(input, 10))
	want := []string{"High", "Mid", "Low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank order = %v, want %v", got, want)
	}
}

func TestRankStableForTies(t *testing.T) {
	t.Parallel()

	input := []ScoredRecommendation{
		{Title: "First", Score: 2.0},
		{Title: "Second", Score: 2.0},
		{Title: "Third", Score: 2.0},
	}

	got := rankTitles(Rank(input, 10))
	want := []string{"First", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied order = %v, want insertion order %v", got, want)
	}
}

func TestRankDedupesKeepingHighestScore(t *testing.T) {
	t.Parallel()

	// The same title discovered via two sources with different scores:
	// sorting happens before deduplication, so the higher score wins.
	input := []ScoredRecommendation{
		{Title: "Dune", Score: 2.0},
		{Title: "Blade Runner", Score: 3.0},
		{Title: "dune", Score: 4.0},
	}

	got := Rank(input, 10)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].Title != "dune" || got[0].Score != 4.0 {
		t.Errorf("got[0] = %+v, want the higher-scored duplicate", got[0])
	}
	if got[1].Title != "Blade Runner" {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestRankTruncates(t *testing.T) {
	t.Parallel()

	input := make([]ScoredRecommendation, 25)
	for i := range input {
		input[i] = ScoredRecommendation{Title: string(rune('a' + i)), Score: float64(25 - i)}
	}

	if got := Rank(input, 10); len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
	if got := Rank(input, 0); len(got) != 25 {
		t.Errorf("limit 0 must not truncate, len = %d", len(got))
	}
}

func TestRankIdempotent(t *testing.T) {
	t.Parallel()

	input := []ScoredRecommendation{
		{Title: "C", Score: 1.0},
		{Title: "A", Score: 3.0},
		{Title: "a", Score: 2.0},
		{Title: "B", Score: 3.0},
	}

	first := Rank(input, 10)
	second := Rank(input, 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Rank is not idempotent:\n%v\nvs\n%v", first, second)
	}

	// Ranking an already-ranked list changes nothing either.
	again := Rank(first, 10)
	if !reflect.DeepEqual(first, again) {
		t.Errorf("re-ranking changed the output:\n%v\nvs\n%v", first, again)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []ScoredRecommendation{
		{Title: "B", Score: 1.0},
		{Title: "A", Score: 2.0},
	}
	snapshot := make([]ScoredRecommendation, len(input))
	copy(snapshot, input)

	Rank(input, 10)
	if !reflect.DeepEqual(input, snapshot) {
		t.Error("Rank modified its input slice")
	}
}
