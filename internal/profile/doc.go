// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package profile derives a preference profile from a watch log.
//
// The profile is a pure aggregation of the rated records: genre, director,
// decade, and country affinities plus certificate and runtime preferences.
// It is built once per uploaded log, read-only afterward, and discarded
// when a new log is uploaded. The package also contains the rating
// normalizer (0-10 public scale to the 0-5 personal scale) and the taste
// narrator, a deterministic template renderer over the profile.
package profile
