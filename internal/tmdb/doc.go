// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package tmdb is the client for the external movie metadata service
// (a TMDB v3-compatible HTTP API).
//
// The client exposes the four operations the analysis run needs: resolve a
// public rating by external (IMDb-style) identifier, discover movies by
// genre and date range, resolve a person by name, and fetch a person's
// filmography. Calls are sequential and rate limited with a fixed
// inter-call delay; failures are typed and surfaced to the caller, which
// skips the affected lookup or source. There is no automatic retry.
//
// The package also provides the candidate-source iterators the
// recommendation engine consumes, and a circuit breaker wrapper that
// stops hammering a failing upstream.
package tmdb
