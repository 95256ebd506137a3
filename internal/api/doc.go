// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package api provides the HTTP surface: watch-log upload, preference
// profile retrieval, recommendation listing, health checks, and metrics.
// Routing uses the Chi router with middleware from the Chi ecosystem,
// and every endpoint responds with the standard envelope from response.go.
package api
