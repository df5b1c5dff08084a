// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"

	"github.com/tomtom215/emotive/internal/features"
)

// ProbePattern is a synthetic input used to check how the model responds
// across the value range.
type ProbePattern struct {
	Name   string
	Values []float64
}

// ProbeResult is the model's answer to one ProbePattern.
type ProbeResult struct {
	Pattern       string    `json:"pattern"`
	Prediction    int       `json:"prediction"`
	Emotion       string    `json:"emotion"`
	Confidence    float64   `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
	Error         string    `json:"error,omitempty"`
}

func constant(v float64) []float64 {
	out := make([]float64, features.Count)
	for i := range out {
		out[i] = v
	}
	return out
}

func alternating(a, b float64) []float64 {
	out := make([]float64, features.Count)
	for i := range out {
		if i%2 == 0 {
			out[i] = a
		} else {
			out[i] = b
		}
	}
	// odd length: the last position is zero
	out[features.Count-1] = 0
	return out
}

// ProbePatterns returns the built-in probe inputs.
func ProbePatterns() []ProbePattern {
	return []ProbePattern{
		{"Extreme Positive (10k)", constant(10000)},
		{"High Positive (5k)", constant(5000)},
		{"Medium Positive (1k)", constant(1000)},
		{"Low Positive (100)", constant(100)},
		{"Zero Values", constant(0)},
		{"Tiny Positive (1)", constant(1)},
		{"Tiny Negative (-1)", constant(-1)},
		{"Low Negative (-100)", constant(-100)},
		{"Medium Negative (-1k)", constant(-1000)},
		{"High Negative (-5k)", constant(-5000)},
		{"Extreme Negative (-10k)", constant(-10000)},
		{"Mixed Extreme", alternating(10000, -10000)},
	}
}

// Probe scores every built-in pattern. A failing pattern is reported in its
// result; only a missing classifier or a cancelled ctx fails the call.
func (s *Service) Probe(ctx context.Context) ([]ProbeResult, error) {
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}

	patterns := ProbePatterns()
	results := make([]ProbeResult, 0, len(patterns))
	for _, p := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := ProbeResult{Pattern: p.Name, Prediction: ErrorPrediction, Emotion: ErrorEmotion}
		o, err := s.score(ctx, p.Values)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Prediction = o.classID
			r.Emotion = o.emotion
			r.Confidence = o.confidence
			r.Probabilities = o.probabilities[:]
		}
		results = append(results, r)
	}
	return results, nil
}
