// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/tomtom215/emotive/internal/features"
)

func TestPredictVector_Positive(t *testing.T) {
	t.Parallel()

	svc := newTestService(positiveClassifier())
	values := make([]float64, features.Count)
	for i := range values {
		values[i] = 0.1
	}

	got, err := svc.PredictVector(context.Background(), formatValues(values))
	if err != nil {
		t.Fatalf("PredictVector() error = %v", err)
	}
	if got.Emotion != "POSITIVE" || got.ClassID != 2 {
		t.Errorf("got %s (%d), want POSITIVE (2)", got.Emotion, got.ClassID)
	}
	if got.Confidence != 80.0 {
		t.Errorf("Confidence = %v, want 80", got.Confidence)
	}
	want := []float64{10, 10, 80}
	for i, p := range got.Probabilities {
		if p != want[i] {
			t.Errorf("Probabilities[%d] = %v, want %v", i, p, want[i])
		}
	}
	if got.MissingCount != 0 {
		t.Errorf("MissingCount = %d, want 0", got.MissingCount)
	}
}

func TestPredictVector_RejectsInvalid(t *testing.T) {
	t.Parallel()

	nan := make([]float64, features.Count)
	nan[3] = math.NaN()
	inf := make([]float64, features.Count)
	inf[44] = math.Inf(-1)

	tests := []struct {
		name   string
		values []float64
		want   error
	}{
		{"empty", nil, features.ErrWrongFeatureCount},
		{"44 values", make([]float64, 44), features.ErrWrongFeatureCount},
		{"46 values", make([]float64, 46), features.ErrWrongFeatureCount},
		{"NaN", nan, features.ErrInvalidValue},
		{"negative infinity", inf, features.ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stub := positiveClassifier()
			_, err := newTestService(stub).PredictVector(context.Background(), formatValues(tt.values))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if stub.rows != 0 {
				t.Error("classifier should not be called for invalid input")
			}
		})
	}
}

func TestPredictSingle_Lenient(t *testing.T) {
	t.Parallel()

	stub := positiveClassifier()
	svc := newTestService(stub)
	names := features.Default().Names()

	values := make(map[string]string, features.Count)
	for i, n := range names {
		values[n] = strconv.Itoa(i + 1)
	}
	values[names[0]] = "abc"
	values[names[1]] = "  "
	delete(values, names[2])
	values["unknown_column"] = "7"

	got, err := svc.PredictSingle(context.Background(), values)
	if err != nil {
		t.Fatalf("PredictSingle() error = %v", err)
	}
	if got.MissingCount != 3 {
		t.Errorf("MissingCount = %d, want 3 (%v)", got.MissingCount, got.MissingFeatures)
	}

	row := stub.lastRow()
	for i := 0; i < 3; i++ {
		if row[i] != 0 {
			t.Errorf("row[%d] = %v, want 0", i, row[i])
		}
	}
	if row[3] != 4 {
		t.Errorf("row[3] = %v, want 4", row[3])
	}
}

func TestPredictSingle_AliasAndCase(t *testing.T) {
	t.Parallel()

	stub := positiveClassifier()
	svc := newTestService(stub)
	first := features.Default().Feature(0)

	values := map[string]string{
		strings.ToUpper(first.Alias): "9",
	}
	values[" "+first.Name+" "] = "5"
	values[features.Default().Feature(1).Alias] = "6"
	if _, err := svc.PredictSingle(context.Background(), values); err != nil {
		t.Fatalf("PredictSingle() error = %v", err)
	}
	row := stub.lastRow()
	if row[0] != 5 {
		t.Errorf("canonical name should win over alias: row[0] = %v", row[0])
	}
	if row[1] != 6 {
		t.Errorf("alias should resolve: row[1] = %v", row[1])
	}
}

func TestPredictVector_Raw(t *testing.T) {
	t.Parallel()

	raw := make([]string, features.Count)
	for i := range raw {
		raw[i] = "1.5"
	}
	svc := newTestService(positiveClassifier())

	if _, err := svc.PredictVector(context.Background(), raw); err != nil {
		t.Fatalf("PredictVector() error = %v", err)
	}

	raw[10] = "x"
	_, err := svc.PredictVector(context.Background(), raw)
	if !errors.Is(err, features.ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
	if ErrorKind(err) != "invalid_format" {
		t.Errorf("ErrorKind() = %q", ErrorKind(err))
	}

	_, err = svc.PredictVector(context.Background(), raw[:5])
	if !errors.Is(err, features.ErrWrongFeatureCount) {
		t.Errorf("error = %v, want ErrWrongFeatureCount", err)
	}
}

func TestPredict_NoClassifier(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	ctx := context.Background()

	if svc.Loaded() {
		t.Error("Loaded() = true without classifier")
	}
	if _, ok := svc.ModelInfo(); ok {
		t.Error("ModelInfo() ok without classifier")
	}
	if _, err := svc.PredictSingle(ctx, nil); !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("PredictSingle() error = %v", err)
	}
	if _, err := svc.PredictVector(ctx, nil); !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("PredictVector() error = %v", err)
	}
	if _, err := svc.ProcessBatch(ctx, fullTable("1")); !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("ProcessBatch() error = %v", err)
	}
	if _, err := svc.Probe(ctx); !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("Probe() error = %v", err)
	}
	if err := svc.Ready(ctx); !errors.Is(err, ErrClassifierUnavailable) {
		t.Errorf("Ready() error = %v", err)
	}
}

func TestPredict_ClassifierError(t *testing.T) {
	t.Parallel()

	boom := errors.New("model crashed")
	svc := newTestService(&fixedClassifier{err: boom})
	_, err := svc.PredictVector(context.Background(), formatValues(make([]float64, features.Count)))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if ErrorKind(err) != "classifier" {
		t.Errorf("ErrorKind() = %q, want classifier", ErrorKind(err))
	}
}
