// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"strings"

	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// Prediction is the result of scoring one record.
type Prediction struct {
	Emotion         string         `json:"emotion"`
	ClassID         int            `json:"prediction"`
	Confidence      float64        `json:"confidence"`
	Probabilities   []float64      `json:"probabilities"`
	MissingCount    int            `json:"missing_features_count"`
	MissingFeatures []string       `json:"missing_features,omitempty"`
	Stats           features.Stats `json:"-"`
}

// PredictSingle scores one record given as feature name or alias to raw
// value. Keys are matched ignoring case and surrounding whitespace; when a
// feature appears under both its name and its alias, the canonical name
// wins. Absent, blank and non-numeric values are replaced with 0 and listed
// in MissingFeatures; unrecognized keys are ignored.
func (s *Service) PredictSingle(ctx context.Context, values map[string]string) (*Prediction, error) {
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}

	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}

	vec, missing := features.Default().Align(func(f features.Feature) (string, bool) {
		if v, ok := normalized[f.Name]; ok {
			return v, true
		}
		v, ok := normalized[f.Alias]
		return v, ok
	})
	return s.predict(ctx, vec, missing)
}

// PredictVector scores an ordered list of raw values. Unlike PredictSingle
// it is strict: every value must parse as a number.
func (s *Service) PredictVector(ctx context.Context, raw []string) (*Prediction, error) {
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}
	vec, err := features.ParseStrict(raw)
	if err != nil {
		metrics.RecordPredictionError("single", ErrorKind(err))
		return nil, err
	}
	return s.predict(ctx, vec[:], nil)
}

func (s *Service) predict(ctx context.Context, values []float64, missing []string) (*Prediction, error) {
	vec, err := features.Validate(values)
	if err != nil {
		metrics.RecordPredictionError("single", ErrorKind(err))
		return nil, err
	}

	stats := features.Summarize(vec)
	logging.Ctx(ctx).Debug().
		Float64("min", stats.Min).
		Float64("max", stats.Max).
		Float64("mean", stats.Mean).
		Int("missing", len(missing)).
		Msg("Scoring single record")

	o, err := s.score(ctx, vec.Slice())
	if err != nil {
		metrics.RecordPredictionError("single", ErrorKind(err))
		return nil, err
	}
	metrics.RecordPrediction("single", o.emotion, o.confidence)

	return &Prediction{
		Emotion:         o.emotion,
		ClassID:         o.classID,
		Confidence:      o.confidence,
		Probabilities:   o.probabilities[:],
		MissingCount:    len(missing),
		MissingFeatures: missing,
		Stats:           stats,
	}, nil
}
