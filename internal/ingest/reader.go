// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package ingest parses an uploaded watch-log spreadsheet export into
// WatchRecords.
//
// Column names are normalized against a fixed vocabulary (Title/Name,
// Year, Rating, Genres, Director, Cast, Country, Runtime, Certificate,
// IMDb ID), so exports from different tools map onto the same record
// shape. Unparseable numeric values become absences, never errors; rows
// without a title are skipped and counted.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gustus/internal/models"
)

// multiValueSeparator splits genre, director, cast, and country lists.
const multiValueSeparator = ","

// columnAliases maps normalized header names to canonical columns.
var columnAliases = map[string]string{
	"title":          "title",
	"name":           "title",
	"year":           "year",
	"rating":         "rating",
	"your rating":    "rating",
	"genres":         "genres",
	"genre":          "genres",
	"director":       "directors",
	"directors":      "directors",
	"cast":           "cast",
	"country":        "countries",
	"countries":      "countries",
	"runtime":        "runtime",
	"runtime (mins)": "runtime",
	"certificate":    "certificate",
	"imdb id":        "external_id",
	"imdb_id":        "external_id",
	"const":          "external_id",
	"external id":    "external_id",
}

// Stats summarizes one parse pass.
type Stats struct {
	RowsTotal    int `json:"rows_total"`
	RowsSkipped  int `json:"rows_skipped"`
	RowsIngested int `json:"rows_ingested"`
}

// Reader parses watch logs.
type Reader struct {
	logger zerolog.Logger
}

// NewReader creates a watch-log reader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReader(logger zerolog.Logger) *Reader {
	return &Reader{logger: logger.With().Str("component", "ingest").Logger()}
}

// Parse reads a CSV or TSV watch log. The delimiter is sniffed from the
// header line: a tab-separated header without commas switches the reader
// to TSV. The first row must be a header; unknown columns are ignored.
// Rows with an empty title are skipped and counted in Stats, everything
// else degrades field by field.
func (r *Reader) Parse(src io.Reader) ([]models.WatchRecord, Stats, error) {
	buf := bufio.NewReader(src)
	cr := csv.NewReader(buf)
	cr.Comma = sniffDelimiter(buf)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headerRow, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, Stats{}, fmt.Errorf("watch log is empty")
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read watch log header: %w", err)
	}

	columns := mapColumns(headerRow)
	if _, ok := columns["title"]; !ok {
		return nil, Stats{}, fmt.Errorf("watch log has no title column")
	}

	var records []models.WatchRecord
	var stats Stats
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A structurally broken row is a skip, not a failure.
			stats.RowsTotal++
			stats.RowsSkipped++
			continue
		}

		stats.RowsTotal++
		record, ok := parseRow(row, columns)
		if !ok {
			stats.RowsSkipped++
			continue
		}
		records = append(records, record)
	}
	stats.RowsIngested = len(records)

	if stats.RowsSkipped > 0 {
		r.logger.Warn().
			Int("skipped", stats.RowsSkipped).
			Int("total", stats.RowsTotal).
			Msg("watch log contained unusable rows")
	}
	r.logger.Info().Int("records", len(records)).Msg("watch log parsed")
	return records, stats, nil
}

// sniffDelimiter peeks at the header line and returns a tab when the
// export is tab-separated. Commas win when both appear, since titles in
// TSV exports may themselves contain commas but headers do not.
func sniffDelimiter(buf *bufio.Reader) rune {
	peek, _ := buf.Peek(4096)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.ContainsRune(line, '\t') && !strings.ContainsRune(line, ',') {
		return '\t'
	}
	return ','
}

// mapColumns resolves header cells to canonical column indices. The first
// occurrence of a canonical column wins.
func mapColumns(headerRow []string) map[string]int {
	columns := make(map[string]int, len(headerRow))
	for i, cell := range headerRow {
		key := strings.ToLower(strings.TrimSpace(cell))
		canonical, known := columnAliases[key]
		if !known {
			continue
		}
		if _, taken := columns[canonical]; !taken {
			columns[canonical] = i
		}
	}
	return columns
}

func parseRow(row []string, columns map[string]int) (models.WatchRecord, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	title := cell("title")
	if title == "" {
		return models.WatchRecord{}, false
	}

	record := models.WatchRecord{
		Title:       title,
		Genres:      splitMulti(cell("genres")),
		Directors:   splitMulti(cell("directors")),
		Cast:        splitMulti(cell("cast")),
		Countries:   splitMulti(cell("countries")),
		Certificate: cell("certificate"),
		ExternalID:  cell("external_id"),
	}

	if year, err := strconv.Atoi(cell("year")); err == nil {
		record.Year = &year
	}
	if rating, err := strconv.ParseFloat(cell("rating"), 64); err == nil {
		record.Rating = &rating
	}
	if runtime, err := strconv.Atoi(cell("runtime")); err == nil {
		record.RuntimeMins = &runtime
	}

	return record, true
}

func splitMulti(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, multiValueSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
