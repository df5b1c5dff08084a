// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/inference"
)

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"count", &features.CountError{Got: 3, Want: 45}, http.StatusBadRequest, ErrCodeWrongFeatureCount},
		{"value", &features.ValueError{Index: 4}, http.StatusBadRequest, ErrCodeInvalidValue},
		{"format", &features.FormatError{Index: 0, Raw: "x"}, http.StatusBadRequest, ErrCodeInvalidFormat},
		{"missing", &inference.MissingFeaturesError{Missing: features.Default().Names()}, http.StatusBadRequest, ErrCodeNoMatchingFeatures},
		{"unreadable", fmt.Errorf("%w: bare quote", inference.ErrUnreadableTable), http.StatusBadRequest, ErrCodeUnreadableTable},
		{"too large", inference.ErrTableTooLarge, http.StatusRequestEntityTooLarge, ErrCodeTableTooLarge},
		{"no model", inference.ErrClassifierUnavailable, http.StatusServiceUnavailable, ErrCodeClassifierUnavailable},
		{"breaker open", fmt.Errorf("predict: %w", gobreaker.ErrOpenState), http.StatusServiceUnavailable, ErrCodeClassifierUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"other", errors.New("shape mismatch"), http.StatusBadGateway, ErrCodeClassifierFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/predict", nil)

			respondServiceError(w, r, tt.err)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			env := decodeEnvelope(t, w.Body.Bytes())
			if env.Success || env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("Expected error code %s, got %+v", tt.code, env.Error)
			}
		})
	}
}

func TestRespondServiceError_MissingSample(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/batch", nil)
	respondServiceError(w, r, &inference.MissingFeaturesError{Missing: features.Default().Names()})

	env := decodeEnvelope(t, w.Body.Bytes())
	details, ok := env.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected details object, got %T", env.Error.Details)
	}
	if details["missing_count"] != float64(features.Count) {
		t.Errorf("Expected missing_count %d, got %v", features.Count, details["missing_count"])
	}
	if sample, _ := details["missing_sample"].([]interface{}); len(sample) != 10 {
		t.Errorf("Expected 10 sampled names, got %v", details["missing_sample"])
	}
}
