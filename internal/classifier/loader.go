// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import (
	"context"
	"fmt"

	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// Load builds the classifier selected by cfg.Backend.
//
// A linear model that cannot be read is an error. A remote backend is
// returned even when its first health check fails, since the model server
// may come up later; the failure is logged and readiness reports it.
func Load(ctx context.Context, cfg *config.ModelConfig) (Classifier, error) {
	switch cfg.Backend {
	case "linear":
		l, err := LoadLinear(cfg.Path)
		if err != nil {
			metrics.SetClassifierLoaded("linear", false)
			return nil, fmt.Errorf("load linear model: %w", err)
		}
		metrics.SetClassifierLoaded("linear", true)
		info := l.Info()
		logging.Info().Str("backend", info.Backend).Str("model_type", info.Type).Str("source", info.Source).Ints("classes", info.Classes).Msg("Classifier loaded")
		return l, nil

	case "remote":
		remote := NewRemote(RemoteConfig{
			URL:            cfg.RemoteURL,
			Timeout:        cfg.RemoteTimeout,
			MaxRetries:     cfg.RemoteRetries,
			RetryBaseDelay: cfg.RetryBaseDelay,
			RPS:            cfg.RemoteRPS,
			Burst:          cfg.RemoteBurst,
		})
		b := NewBreaker(remote, BreakerConfig{
			Name:         "model-server",
			MaxRequests:  cfg.BreakerMaxRequests,
			Interval:     cfg.BreakerInterval,
			Timeout:      cfg.BreakerTimeout,
			MinRequests:  cfg.BreakerMinRequests,
			FailureRatio: cfg.BreakerFailureRatio,
		})
		if err := remote.Ping(ctx); err != nil {
			metrics.SetClassifierLoaded("remote", false)
			logging.Warn().Err(err).Str("url", cfg.RemoteURL).Msg("Model server not reachable yet")
		} else {
			metrics.SetClassifierLoaded("remote", true)
			logging.Info().Str("backend", "remote").Str("model_type", remote.Info().Type).Str("url", cfg.RemoteURL).Msg("Classifier connected")
		}
		return b, nil

	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}
