// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // requests allowed through while half-open
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open-state duration before half-open
	MinRequests  uint32        // requests needed before the ratio is considered
	FailureRatio float64
}

// Breaker wraps a Classifier with a circuit breaker. While the circuit is
// open, calls fail fast with gobreaker.ErrOpenState.
type Breaker struct {
	inner Classifier
	cb    *gobreaker.CircuitBreaker[scoreResult]
	name  string
}

type scoreResult struct {
	ids   []int
	probs [][]float64
}

// NewBreaker wraps inner.
func NewBreaker(inner Classifier, cfg BreakerConfig) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "model-server"
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[scoreResult](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().Str("breaker", cfg.Name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A caller giving up is not a fault of the model server.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{inner: inner, cb: cb, name: cfg.Name}
}

// Info reports the wrapped classifier's metadata and the breaker state.
func (b *Breaker) Info() Info {
	info := Describe(b.inner)
	info.Breaker = b.State()
	return info
}

// Ping passes through to the wrapped classifier when it supports it. Pings
// do not count toward the breaker.
func (b *Breaker) Ping(ctx context.Context) error {
	if b.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	if p, ok := b.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Predict returns class ids through the breaker.
func (b *Breaker) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	ids, _, err := b.Score(ctx, rows)
	return ids, err
}

// PredictProba returns probabilities through the breaker.
func (b *Breaker) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	_, probs, err := b.Score(ctx, rows)
	return probs, err
}

// Score scores rows through the breaker.
func (b *Breaker) Score(ctx context.Context, rows [][]float64) ([]int, [][]float64, error) {
	res, err := b.cb.Execute(func() (scoreResult, error) {
		var r scoreResult
		var err error
		if s, ok := b.inner.(Scorer); ok {
			r.ids, r.probs, err = s.Score(ctx, rows)
			return r, err
		}
		if r.ids, err = b.inner.Predict(ctx, rows); err != nil {
			return r, err
		}
		r.probs, err = b.inner.PredictProba(ctx, rows)
		return r, err
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		}
		return nil, nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return res.ids, res.probs, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// IsUnavailable reports whether err means the model could not be reached,
// as opposed to the model rejecting or failing on a request.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, ErrRemoteUnhealthy)
}
