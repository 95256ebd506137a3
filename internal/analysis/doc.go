// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package analysis orchestrates a full run over an ingested watch log:
// resolving public ratings through the cache and the metadata service,
// building the preference profile, ranking recommendations from genre
// and director sources, collecting upcoming releases, and narrating the
// result. One run is active at a time.
package analysis
