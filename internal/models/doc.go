// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package models defines the shared data types exchanged between the
// ingestion, profiling, recommendation, and API layers: watch-log records,
// candidate movies from the metadata service, and the standard API
// response envelope.
package models
