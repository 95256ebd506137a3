// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package ratingcache persists previously fetched public ratings in a flat
// append-only CSV file so repeat lookups never hit the metadata service.
//
// The file is the only durable state in the system. Rows are never
// rewritten once written; the store appends new resolutions and reads the
// whole file into an immutable Snapshot at the start of each analysis run.
// The snapshot is handed to the run explicitly, never shared as ambient
// state, so runs stay independent and trivially testable with an in-memory
// fixture.
package ratingcache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

// header is the fixed column order of the cache file.
var header = []string{"IMDb ID", "TMDb ID", "Title", "Year", "Public Avg Rating"}

// Entry is one cached public-rating resolution, keyed by external ID.
// PublicRating is on the service's native 0-10 scale.
type Entry struct {
	ExternalID   string  `json:"external_id"`
	TMDBID       int     `json:"tmdb_id"`
	Title        string  `json:"title"`
	Year         string  `json:"year"`
	PublicRating float64 `json:"public_rating"`
}

// Snapshot is an immutable view of the cache, read once per analysis run.
type Snapshot struct {
	entries map[string]Entry
}

// NewSnapshot builds a snapshot from entries. Later duplicates of an
// external ID are ignored; the first written row wins, matching the
// append-only contract.
func NewSnapshot(entries []Entry) *Snapshot {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, exists := m[e.ExternalID]; !exists {
			m[e.ExternalID] = e
		}
	}
	return &Snapshot{entries: m}
}

// Lookup returns the cached entry for an external ID.
func (s *Snapshot) Lookup(externalID string) (Entry, bool) {
	e, ok := s.entries[externalID]
	return e, ok
}

// Contains reports whether an external ID is cached.
func (s *Snapshot) Contains(externalID string) bool {
	_, ok := s.entries[externalID]
	return ok
}

// Len returns the number of cached entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Ratings returns external ID to public rating (0-10 scale) for every
// cached entry.
func (s *Snapshot) Ratings() map[string]float64 {
	out := make(map[string]float64, len(s.entries))
	for id, e := range s.entries {
		out[id] = e.PublicRating
	}
	return out
}

// Store reads and appends the cache file. Writes are append-only; the
// system processes one upload at a time, so no file locking is needed.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a store for the given file path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("cache file path is required")
	}
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "ratingcache").Logger(),
	}, nil
}

// Load reads the whole cache file into a snapshot. A missing file is not
// an error: it yields an empty snapshot. Malformed rows are skipped and
// counted, never fatal.
func (s *Store) Load() (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("cache file absent, starting empty")
			return NewSnapshot(nil), nil
		}
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only descriptor

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var entries []Entry
	skipped := 0
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read cache file: %w", err)
		}
		if first {
			first = false
			if isHeaderRow(row) {
				continue
			}
		}

		entry, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		s.logger.Warn().Int("skipped_rows", skipped).Str("path", s.path).
			Msg("cache file contained malformed rows")
	}
	s.logger.Debug().Int("entries", len(entries)).Str("path", s.path).Msg("cache loaded")
	return NewSnapshot(entries), nil
}

// Append writes new entries to the end of the cache file, creating it with
// a header row first if needed. Existing rows are never touched.
func (s *Store) Append(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	info, statErr := os.Stat(s.path)
	needHeader := errors.Is(statErr, os.ErrNotExist) || (statErr == nil && info.Size() == 0)
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("stat cache file: %w", statErr)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open cache file for append: %w", err)
	}
	defer f.Close() //nolint:errcheck // flush errors surface via w.Error below

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write cache header: %w", err)
		}
	}
	for i := range entries {
		e := &entries[i]
		row := []string{
			e.ExternalID,
			strconv.Itoa(e.TMDBID),
			e.Title,
			e.Year,
			strconv.FormatFloat(e.PublicRating, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write cache row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}

	s.logger.Info().Int("appended", len(entries)).Str("path", s.path).Msg("cache entries appended")
	return nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && row[0] == header[0]
}

// parseRow converts one CSV row to an Entry. Rows with a missing external
// ID or an unparseable rating are rejected.
func parseRow(row []string) (Entry, bool) {
	if len(row) < 5 || row[0] == "" {
		return Entry{}, false
	}
	rating, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Entry{}, false
	}
	tmdbID, err := strconv.Atoi(row[1])
	if err != nil {
		tmdbID = 0
	}
	return Entry{
		ExternalID:   row[0],
		TMDBID:       tmdbID,
		Title:        row[2],
		Year:         row[3],
		PublicRating: rating,
	}, true
}
