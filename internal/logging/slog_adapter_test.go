// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler)

	logger.Info("service started", slog.String("name", "api"))

	out := buf.String()
	if !strings.Contains(out, `"message":"service started"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"name":"api"`) {
		t.Errorf("output missing attribute: %s", out)
	}
}

func TestSlogHandlerWithGroupPrefixesKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler).WithGroup("supervisor")

	logger.Warn("restarting", slog.String("service", "http"))

	if out := buf.String(); !strings.Contains(out, `"supervisor.service":"http"`) {
		t.Errorf("output missing grouped key: %s", out)
	}
}

func TestSlogHandlerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, `"level":"debug"`},
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
		logger := slog.New(handler)

		logger.Log(context.Background(), tt.level, "msg")

		if out := buf.String(); !strings.Contains(out, tt.want) {
			t.Errorf("level %v: output %s missing %s", tt.level, out, tt.want)
		}
	}
}
