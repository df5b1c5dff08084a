// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"math"
	"time"

	"github.com/tomtom215/emotive/internal/classifier"
)

// Service runs predictions against a classifier. A Service holds no
// per-request state and is safe for concurrent use.
type Service struct {
	classifier classifier.Classifier
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for processed_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. c may be nil when no model could be loaded;
// every prediction then fails with ErrClassifierUnavailable.
func NewService(c classifier.Classifier, opts ...Option) *Service {
	s := &Service{classifier: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loaded reports whether a classifier is present.
func (s *Service) Loaded() bool {
	return s.classifier != nil
}

// ModelInfo describes the loaded classifier. ok is false when none is loaded.
func (s *Service) ModelInfo() (info classifier.Info, ok bool) {
	if s.classifier == nil {
		return classifier.Info{}, false
	}
	return classifier.Describe(s.classifier), true
}

// Ready checks that the classifier can serve requests right now.
func (s *Service) Ready(ctx context.Context) error {
	if s.classifier == nil {
		return ErrClassifierUnavailable
	}
	if p, ok := s.classifier.(classifier.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// outcome is the scored form of one validated vector.
type outcome struct {
	classID       int
	emotion       string
	confidence    float64
	probabilities [3]float64
}

func (s *Service) score(ctx context.Context, vec []float64) (outcome, error) {
	ids, probs, err := classifier.Score(ctx, s.classifier, [][]float64{vec})
	if err != nil {
		return outcome{}, err
	}
	o := outcome{
		classID: ids[0],
		emotion: classifier.MapLabel(ids[0]),
	}
	best := 0.0
	for i, p := range probs[0] {
		o.probabilities[i] = round(p*100, 2)
		best = math.Max(best, p)
	}
	o.confidence = round(best*100, 1)
	return o, nil
}

func round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
