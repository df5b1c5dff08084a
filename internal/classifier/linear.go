// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
	"github.com/tomtom215/emotive/internal/features"
)

// ErrInvalidModel is returned when a model file is structurally wrong.
var ErrInvalidModel = errors.New("invalid model")

// LinearModel is the on-disk form of a multinomial logistic regression with
// an optional standard-scaling step, as exported from a scikit-learn
// Pipeline(StandardScaler, LogisticRegression).
type LinearModel struct {
	Type      string      `json:"type"`
	Version   string      `json:"version,omitempty"`
	Classes   []int       `json:"classes"`
	Scaler    *Scaler     `json:"scaler,omitempty"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Scaler standardizes each feature as (x - Mean) / Scale. A zero scale
// leaves the centered value unscaled.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Linear is an in-process Classifier backed by a LinearModel. It is
// read-only after construction.
type Linear struct {
	model  LinearModel
	source string
}

// LoadLinear reads and validates a model file.
func LoadLinear(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidModel, path, err)
	}
	l, err := NewLinear(m)
	if err != nil {
		return nil, err
	}
	l.source = path
	return l, nil
}

// NewLinear validates m and returns a classifier for it.
func NewLinear(m LinearModel) (*Linear, error) {
	n := len(m.Classes)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 classes, got %d", ErrInvalidModel, n)
	}
	if len(m.Coef) != n || len(m.Intercept) != n {
		return nil, fmt.Errorf("%w: %d classes but %d coefficient rows and %d intercepts",
			ErrInvalidModel, n, len(m.Coef), len(m.Intercept))
	}
	for i, row := range m.Coef {
		if len(row) != features.Count {
			return nil, fmt.Errorf("%w: coefficient row %d has %d weights, want %d",
				ErrInvalidModel, i, len(row), features.Count)
		}
	}
	if m.Scaler != nil && (len(m.Scaler.Mean) != features.Count || len(m.Scaler.Scale) != features.Count) {
		return nil, fmt.Errorf("%w: scaler must have %d means and scales", ErrInvalidModel, features.Count)
	}
	if m.Type == "" {
		m.Type = "softmax_linear"
	}
	return &Linear{model: m}, nil
}

// Info describes the model.
func (l *Linear) Info() Info {
	classes := make([]int, len(l.model.Classes))
	copy(classes, l.model.Classes)
	return Info{
		Backend:  "linear",
		Type:     l.model.Type,
		Classes:  classes,
		Features: features.Count,
		Source:   l.source,
	}
}

// Predict returns the class with the highest probability for each row.
func (l *Linear) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	ids, _, err := l.Score(ctx, rows)
	return ids, err
}

// PredictProba returns the class probabilities for each row.
func (l *Linear) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	_, probs, err := l.Score(ctx, rows)
	return probs, err
}

// Score returns predictions and probabilities in one pass.
func (l *Linear) Score(_ context.Context, rows [][]float64) ([]int, [][]float64, error) {
	ids := make([]int, len(rows))
	probs := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != features.Count {
			return nil, nil, fmt.Errorf("row %d: expected %d features, got %d", i, features.Count, len(row))
		}
		p, err := l.proba(row)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		best := 0
		for c := 1; c < len(p); c++ {
			if p[c] > p[best] {
				best = c
			}
		}
		ids[i] = l.model.Classes[best]
		probs[i] = p
	}
	return ids, probs, nil
}

// proba fails when the scaled inputs overflow into opposing infinities,
// which leaves a logit undefined.
func (l *Linear) proba(row []float64) ([]float64, error) {
	x := row
	if s := l.model.Scaler; s != nil {
		x = make([]float64, len(row))
		for j, v := range row {
			x[j] = v - s.Mean[j]
			if s.Scale[j] != 0 {
				x[j] /= s.Scale[j]
			}
		}
	}

	logits := make([]float64, len(l.model.Coef))
	for c, w := range l.model.Coef {
		z := l.model.Intercept[c]
		for j := range w {
			z += w[j] * x[j]
		}
		if math.IsNaN(z) {
			return nil, fmt.Errorf("%w: logit for class %d overflowed", ErrMalformedOutput, l.model.Classes[c])
		}
		logits[c] = z
	}
	return softmax(logits), nil
}

// softmax is computed relative to the largest logit so that extreme inputs
// cannot overflow exp. When the largest logit is infinite, the classes at
// that logit share the probability mass equally.
func softmax(z []float64) []float64 {
	maxZ := math.Inf(-1)
	for _, v := range z {
		maxZ = math.Max(maxZ, v)
	}
	out := make([]float64, len(z))
	if math.IsInf(maxZ, 0) {
		var n float64
		for i, v := range z {
			if v == maxZ {
				out[i] = 1
				n++
			}
		}
		for i := range out {
			out[i] /= n
		}
		return out
	}

	var sum float64
	for i, v := range z {
		out[i] = math.Exp(v - maxZ)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
