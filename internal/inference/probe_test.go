// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/emotive/internal/features"
)

func TestProbePatterns(t *testing.T) {
	t.Parallel()

	patterns := ProbePatterns()
	if len(patterns) != 12 {
		t.Fatalf("got %d patterns, want 12", len(patterns))
	}
	for _, p := range patterns {
		if len(p.Values) != features.Count {
			t.Errorf("%s has %d values", p.Name, len(p.Values))
		}
		if _, err := features.Validate(p.Values); err != nil {
			t.Errorf("%s is invalid: %v", p.Name, err)
		}
	}

	if patterns[0].Values[0] != 10000 || patterns[10].Values[44] != -10000 {
		t.Error("extreme patterns out of order")
	}
	mixed := patterns[11]
	if mixed.Name != "Mixed Extreme" || mixed.Values[0] != 10000 || mixed.Values[1] != -10000 || mixed.Values[44] != 0 {
		t.Errorf("unexpected mixed pattern %v", mixed.Values)
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	results, err := newTestService(positiveClassifier()).Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if len(results) != 12 {
		t.Fatalf("got %d results", len(results))
	}
	for _, r := range results {
		if r.Error != "" || r.Emotion != "POSITIVE" || r.Confidence != 80 {
			t.Errorf("unexpected result %+v", r)
		}
	}
}

func TestProbe_ClassifierError(t *testing.T) {
	t.Parallel()

	results, err := newTestService(&fixedClassifier{err: errors.New("down")}).Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	for _, r := range results {
		if r.Error == "" || r.Prediction != ErrorPrediction {
			t.Errorf("expected failed result, got %+v", r)
		}
	}
}
