// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/profile", "200"))
	RecordAPIRequest("GET", "/api/v1/profile", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/profile", "200"))

	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("gauge after inc = %v, want %v", got, base+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("gauge after dec = %v, want %v", got, base)
	}
}

func TestRecordLookup(t *testing.T) {
	before := testutil.ToFloat64(LookupsTotal.WithLabelValues("cache_hit"))
	RecordLookup("cache_hit", time.Millisecond)
	after := testutil.ToFloat64(LookupsTotal.WithLabelValues("cache_hit"))

	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordAnalysisRunStatus(t *testing.T) {
	beforeOK := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("success"))
	beforeFail := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("failure"))

	RecordAnalysisRun(time.Second, 10, nil)
	RecordAnalysisRun(time.Second, 0, errors.New("boom"))

	if got := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("success")); got != beforeOK+1 {
		t.Errorf("success counter = %v, want %v", got, beforeOK+1)
	}
	if got := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("failure")); got != beforeFail+1 {
		t.Errorf("failure counter = %v, want %v", got, beforeFail+1)
	}
}
