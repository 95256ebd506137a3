// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package validation

import (
	"strings"
	"testing"
)

type limitRequest struct {
	Limit int `validate:"min=1,max=50"`
}

type multiFieldRequest struct {
	Name  string `validate:"required"`
	Limit int    `validate:"min=1"`
}

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&limitRequest{Limit: 10}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&limitRequest{Limit: 100})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1", len(err.Errors()))
	}
	fe := err.Errors()[0]
	if fe.Field() != "Limit" || fe.Tag() != "max" {
		t.Errorf("field = %q, tag = %q", fe.Field(), fe.Tag())
	}
	if got := fe.Error(); got != "Limit must be at most 50" {
		t.Errorf("message = %q", got)
	}

	details := err.Details()
	if details["field"] != "Limit" {
		t.Errorf("details field = %v", details["field"])
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&multiFieldRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("combined message should join with semicolons: %q", err.Error())
	}
	if _, ok := err.Details()["fields"]; !ok {
		t.Error("multi-error details should carry a fields list")
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}
