// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package validation

import (
	"math"
	"strings"
	"testing"
)

type historyQuery struct {
	Limit int    `json:"limit" validate:"min=1,max=100"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
}

type featureParam struct {
	Name  string  `json:"name" validate:"required,feature"`
	Value float64 `json:"value" validate:"finite"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantErr   bool
		wantField string
		wantMsg   string
	}{
		{"valid limit", &historyQuery{Limit: 20}, false, "", ""},
		{"limit too small", &historyQuery{Limit: 0}, true, "limit", "limit must be at least 1"},
		{"limit too large", &historyQuery{Limit: 101}, true, "limit", "limit must be at most 100"},
		{"bad order", &historyQuery{Limit: 5, Order: "up"}, true, "order", "order must be one of: asc desc"},
		{"canonical feature", &featureParam{Name: "eeg_f3", Value: 1}, false, "", ""},
		{"alias feature", &featureParam{Name: "f44", Value: -3}, false, "", ""},
		{"unknown feature", &featureParam{Name: "f45", Value: 0}, true, "name", "name must be a known feature name"},
		{"nan value", &featureParam{Name: "f0", Value: math.NaN()}, true, "value", "value must be a finite number"},
		{"inf value", &featureParam{Name: "f0", Value: math.Inf(-1)}, true, "value", "value must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.input)
			if !tt.wantErr {
				if verr != nil {
					t.Fatalf("expected no error, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			first := verr.Errors()[0]
			if first.Field() != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, first.Field())
			}
			if first.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, first.Error())
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&historyQuery{Limit: 0}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", single.Code)
	}
	if single.Details["field"] != "limit" {
		t.Errorf("expected field detail 'limit', got %v", single.Details["field"])
	}

	multi := ValidateStruct(&featureParam{Name: "nope", Value: math.NaN()}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field details, got %v", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("expected joined message, got %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("expected generic message, got %q", empty.Message)
	}
}
