// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package recommend scores candidate movies against a preference profile
// and produces a ranked, explainable recommendation list.
//
// The engine pulls candidates from one or more CandidateSource iterators,
// applies a fixed rejection sequence (seen titles, vote count, excluded
// genres, rating and year thresholds), then scores survivors with additive
// weighted terms. Each contributing term appends a human-readable reason
// string so every recommendation explains itself. Scoring is deterministic:
// identical inputs always produce identical output order.
//
// Candidate sources are decoupled from the transport. The engine never
// issues HTTP requests itself; a failing source contributes zero candidates
// and does not abort the run.
package recommend
