// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"sort"
	"strings"
)

// Rank orders scored candidates by descending score, deduplicates by title,
// and truncates to limit. The input slice is not modified.
//
// The sort is stable with respect to insertion order for exact ties, and
// deduplication runs after sorting so the highest-scored instance of a
// duplicated title is the one kept. No state is carried between calls:
// identical inputs always produce identical output.
func Rank(scored []ScoredRecommendation, limit int) []ScoredRecommendation {
	ranked := make([]ScoredRecommendation, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	seen := make(map[string]struct{}, len(ranked))
	deduped := ranked[:0]
	for i := range ranked {
		key := strings.ToLower(strings.TrimSpace(ranked[i].Title))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, ranked[i])
	}

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}
