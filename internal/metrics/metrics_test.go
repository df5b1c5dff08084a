// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))
	RecordAPIRequest("POST", "/api/v1/predict", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v active requests, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %v active requests, got %v", before, got)
	}
}

func TestRecordPrediction(t *testing.T) {
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("single", "POSITIVE"))
	RecordPrediction("single", "POSITIVE", 80)
	if got := testutil.ToFloat64(PredictionsTotal.WithLabelValues("single", "POSITIVE")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}

	beforeErr := testutil.ToFloat64(PredictionErrors.WithLabelValues("batch", "invalid_value"))
	RecordPredictionError("batch", "invalid_value")
	if got := testutil.ToFloat64(PredictionErrors.WithLabelValues("batch", "invalid_value")); got != beforeErr+1 {
		t.Errorf("expected %v, got %v", beforeErr+1, got)
	}
}

func TestRecordBatch(t *testing.T) {
	okBefore := testutil.ToFloat64(BatchRows.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(BatchRows.WithLabelValues("error"))
	processedBefore := testutil.ToFloat64(BatchesTotal.WithLabelValues("processed"))

	RecordBatch(7, 3, 77.78, time.Second)

	if got := testutil.ToFloat64(BatchRows.WithLabelValues("success")) - okBefore; got != 7 {
		t.Errorf("expected 7 successful rows, got %v", got)
	}
	if got := testutil.ToFloat64(BatchRows.WithLabelValues("error")) - errBefore; got != 3 {
		t.Errorf("expected 3 error rows, got %v", got)
	}
	if got := testutil.ToFloat64(BatchesTotal.WithLabelValues("processed")) - processedBefore; got != 1 {
		t.Errorf("expected 1 processed batch, got %v", got)
	}
}

func TestSetClassifierLoaded(t *testing.T) {
	SetClassifierLoaded("linear", true)
	if got := testutil.ToFloat64(ClassifierLoaded.WithLabelValues("linear")); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	SetClassifierLoaded("linear", false)
	if got := testutil.ToFloat64(ClassifierLoaded.WithLabelValues("linear")); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StoreOperations.WithLabelValues("put", tt.result))
			RecordStoreOperation("put", tt.err)
			if got := testutil.ToFloat64(StoreOperations.WithLabelValues("put", tt.result)); got != before+1 {
				t.Errorf("expected %v, got %v", before+1, got)
			}
		})
	}
}

func TestRecordEventHandled(t *testing.T) {
	before := testutil.ToFloat64(EventsHandled.WithLabelValues("batch.completed", "true"))
	RecordEventHandled("batch.completed", true)
	if got := testutil.ToFloat64(EventsHandled.WithLabelValues("batch.completed", "true")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}
