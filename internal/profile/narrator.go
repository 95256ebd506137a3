// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package profile

import (
	"fmt"
	"strings"
)

// Runtime thresholds in minutes for the narrator's runtime sentence.
const (
	longRuntimeMins  = 120
	shortRuntimeMins = 90
)

// Narrate renders the profile into a short natural-language summary.
// The output is a deterministic template over the profile: the same
// profile always yields the same text, byte for byte. Sections without
// data are omitted.
func Narrate(p *PreferenceProfile) string {
	var sentences []string

	if genres := p.TopGenres(3); len(genres) > 0 {
		sentences = append(sentences,
			fmt.Sprintf("Your highest-rated genres are %s.", joinNames(genres)))
	}

	if decades := p.TopDecades(2); len(decades) > 0 {
		names := make([]string, len(decades))
		for i, d := range decades {
			names[i] = fmt.Sprintf("%ds", d)
		}
		sentences = append(sentences,
			fmt.Sprintf("You rate films from the %s most highly.", joinNames(names)))
	}

	if directors := p.TopDirectors(3); len(directors) > 0 {
		sentences = append(sentences,
			fmt.Sprintf("Directors you keep coming back to: %s.", joinNames(directors)))
	}

	if p.RuntimeCount > 0 {
		switch {
		case p.MeanRuntime >= longRuntimeMins:
			sentences = append(sentences, "You lean toward long runtimes.")
		case p.MeanRuntime <= shortRuntimeMins:
			sentences = append(sentences, "You lean toward short runtimes.")
		default:
			sentences = append(sentences, "You are flexible about runtime.")
		}
	}

	if len(sentences) == 0 {
		return "Not enough rated films to describe your taste yet."
	}
	return strings.Join(sentences, " ")
}

// joinNames renders a list as "A", "A and B", or "A, B and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
