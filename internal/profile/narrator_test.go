// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package profile

import (
	"strings"
	"testing"
)

func narratorProfile() *PreferenceProfile {
	return &PreferenceProfile{
		GenreAffinity: map[string]AffinityStat{
			"Drama":    {Count: 5, Mean: 4.6},
			"Thriller": {Count: 4, Mean: 4.2},
			"Crime":    {Count: 3, Mean: 4.0},
			"Comedy":   {Count: 2, Mean: 2.5},
		},
		DecadeAffinity: map[int]AffinityStat{
			1970: {Count: 4, Mean: 4.5},
			2010: {Count: 6, Mean: 4.1},
			1990: {Count: 3, Mean: 3.2},
		},
		DirectorAffinity: map[string]AffinityStat{
			"Sidney Lumet":     {Count: 3, Mean: 4.7},
			"Denis Villeneuve": {Count: 2, Mean: 4.3},
		},
		MeanRuntime:  132,
		RuntimeCount: 15,
	}
}

func TestNarrateFullProfile(t *testing.T) {
	t.Parallel()

	got := Narrate(narratorProfile())

	want := "Your highest-rated genres are Drama, Thriller and Crime. " +
		"You rate films from the 1970s and 2010s most highly. " +
		"Directors you keep coming back to: Sidney Lumet and Denis Villeneuve. " +
		"You lean toward long runtimes."
	if got != want {
		t.Errorf("Narrate() =\n%q\nwant\n%q", got, want)
	}
}

func TestNarrateDeterministic(t *testing.T) {
	t.Parallel()

	p := narratorProfile()
	first := Narrate(p)
	for i := 0; i < 10; i++ {
		if got := Narrate(p); got != first {
			t.Fatalf("Narrate() not byte-deterministic on iteration %d:\n%q\nvs\n%q", i, got, first)
		}
	}
}

func TestNarrateRuntimeThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		runtime float64
		want    string
	}{
		{"long at boundary", 120, "long runtimes"},
		{"long above", 150, "long runtimes"},
		{"short at boundary", 90, "short runtimes"},
		{"short below", 80, "short runtimes"},
		{"flexible", 105, "flexible about runtime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &PreferenceProfile{MeanRuntime: tt.runtime, RuntimeCount: 5}
			if got := Narrate(p); !strings.Contains(got, tt.want) {
				t.Errorf("Narrate() = %q, want mention of %q", got, tt.want)
			}
		})
	}
}

func TestNarrateEmptyProfile(t *testing.T) {
	t.Parallel()

	got := Narrate(&PreferenceProfile{})
	if got != "Not enough rated films to describe your taste yet." {
		t.Errorf("Narrate(empty) = %q", got)
	}
}

func TestNarrateOmitsSectionsWithoutData(t *testing.T) {
	t.Parallel()

	p := &PreferenceProfile{
		GenreAffinity: map[string]AffinityStat{"Drama": {Count: 1, Mean: 4}},
	}
	got := Narrate(p)

	if !strings.Contains(got, "Drama") {
		t.Errorf("Narrate() = %q, want genre sentence", got)
	}
	if strings.Contains(got, "runtime") || strings.Contains(got, "Directors") {
		t.Errorf("Narrate() = %q, must omit sections without data", got)
	}
}

func TestJoinNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		names []string
		want  string
	}{
		{nil, ""},
		{[]string{"Drama"}, "Drama"},
		{[]string{"Drama", "Crime"}, "Drama and Crime"},
		{[]string{"Drama", "Crime", "Noir"}, "Drama, Crime and Noir"},
	}

	for _, tt := range tests {
		if got := joinNames(tt.names); got != tt.want {
			t.Errorf("joinNames(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
