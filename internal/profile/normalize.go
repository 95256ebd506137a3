// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package profile

import (
	"strconv"
	"strings"
)

// NormalizePublicRating converts a public rating on the 0-10 scale to the
// 0-5 scale used for personal ratings.
func NormalizePublicRating(rating float64) float64 {
	return rating / 2
}

// Decade returns the decade a year belongs to: floor(year/10)*10.
func Decade(year int) int {
	if year < 0 {
		// Integer division truncates toward zero; shift so negative years
		// still round down.
		return ((year - 9) / 10) * 10
	}
	return (year / 10) * 10
}

// DecadeOf parses a raw year value and returns its decade. The second
// return value is false when the year is missing or non-numeric; callers
// must treat such records as having no decade. This never panics, it only
// signals absence.
func DecadeOf(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return Decade(year), true
}

// ParseRating parses a raw rating value. The second return value is false
// for missing or non-numeric input.
func ParseRating(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}
