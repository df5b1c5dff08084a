// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package classifier abstracts the pre-trained emotion model behind a narrow
// capability interface and provides the two supported backends: a local
// linear model loaded from JSON, and an HTTP client for a remote model
// server guarded by a circuit breaker.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/emotive/internal/metrics"
)

// Classifier is the opaque model. Both calls take a batch of feature rows and
// return one result per row. Probabilities are positionally aligned with
// class ids 0, 1, 2. Implementations must be safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, rows [][]float64) ([]int, error)
	PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error)
}

// Scorer is implemented by backends that can return predictions and
// probabilities from a single call.
type Scorer interface {
	Score(ctx context.Context, rows [][]float64) ([]int, [][]float64, error)
}

// Describer is implemented by backends that can report model metadata.
type Describer interface {
	Info() Info
}

// Pinger is implemented by backends whose availability can change at runtime.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Info describes a loaded model.
type Info struct {
	Backend  string `json:"backend"`
	Type     string `json:"model_type"`
	Classes  []int  `json:"classes,omitempty"`
	Features int    `json:"n_features,omitempty"`
	Source   string `json:"source,omitempty"`
	Breaker  string `json:"breaker_state,omitempty"`
}

// ErrMalformedOutput is returned when a backend's output does not match the
// shape of its input.
var ErrMalformedOutput = errors.New("classifier returned malformed output")

// Describe returns c's Info, or a minimal Info for backends that do not
// implement Describer.
func Describe(c Classifier) Info {
	if d, ok := c.(Describer); ok {
		return d.Info()
	}
	return Info{Backend: "custom", Type: fmt.Sprintf("%T", c)}
}

// Score runs rows through c, using Scorer when c implements it and falling
// back to Predict followed by PredictProba. The output is checked for shape
// and finite probabilities, and the call duration is recorded by backend.
func Score(ctx context.Context, c Classifier, rows [][]float64) ([]int, [][]float64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordClassifierCall(Describe(c).Backend, time.Since(start))
	}()

	var (
		ids   []int
		probs [][]float64
		err   error
	)
	if s, ok := c.(Scorer); ok {
		ids, probs, err = s.Score(ctx, rows)
	} else {
		ids, err = c.Predict(ctx, rows)
		if err == nil {
			probs, err = c.PredictProba(ctx, rows)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	if len(ids) != len(rows) || len(probs) != len(rows) {
		return nil, nil, fmt.Errorf("%w: %d rows in, %d predictions and %d probability vectors out",
			ErrMalformedOutput, len(rows), len(ids), len(probs))
	}
	for i, p := range probs {
		if len(p) != len(Labels) {
			return nil, nil, fmt.Errorf("%w: row %d has %d probabilities, want %d",
				ErrMalformedOutput, i, len(p), len(Labels))
		}
		for c, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, fmt.Errorf("%w: row %d class %d probability is %v",
					ErrMalformedOutput, i, c, v)
			}
		}
	}
	return ids, probs, nil
}
