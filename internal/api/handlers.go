// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"context"
	"time"

	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/events"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/store"
)

// ArtifactStore persists batch artifacts and history. Satisfied by
// *store.Store.
type ArtifactStore interface {
	PutArtifact(ctx context.Context, a *store.Artifact) error
	GetArtifact(ctx context.Context, id string) (*store.Artifact, error)
	AppendHistory(ctx context.Context, e *store.HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]store.HistoryEntry, error)
	Ping(ctx context.Context) error
}

// EventPublisher announces processed batches. Satisfied by *events.Bus.
type EventPublisher interface {
	PublishBatchCompleted(ctx context.Context, e *events.BatchCompleted) error
}

// Handler holds the dependencies of the API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health, liveness and readiness
//   - handlers_model.go: feature spec, model info and probe
//   - handlers_predict.go: single-record prediction
//   - handlers_batch.go: CSV upload, history and download
type Handler struct {
	svc       *inference.Service
	store     ArtifactStore  // optional; without it batches are not kept
	publisher EventPublisher // optional; without it history is written directly
	batch     config.BatchConfig
	startTime time.Time
}

// NewHandler creates a Handler. st and pub may be nil.
func NewHandler(svc *inference.Service, st ArtifactStore, pub EventPublisher, batch config.BatchConfig) *Handler {
	return &Handler{
		svc:       svc,
		store:     st,
		publisher: pub,
		batch:     batch,
		startTime: time.Now(),
	}
}
