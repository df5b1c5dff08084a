// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/emotive/internal/logging"
)

// GarbageCollector is satisfied by *store.Store.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService reclaims value log space in the artifact store every
// interval. Expired artifacts are dropped by their TTL; this pass returns
// their disk space.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewStoreGCService creates the service. A non-positive interval means 10m.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		logger:   logging.WithComponent("store-gc"),
	}
}

// Serve implements suture.Service. GC errors are logged, not returned, so a
// busy store does not trigger restarts.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("Artifact store GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Artifact store GC complete")
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (s *StoreGCService) String() string {
	return "store-gc"
}
