// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/store"
)

// HistoryWriter is satisfied by *store.Store.
type HistoryWriter interface {
	AppendHistory(ctx context.Context, e *store.HistoryEntry) error
}

// Recorder writes every BatchCompleted event to the batch history. It
// implements suture.Service.
type Recorder struct {
	handler *MessageHandler
	history HistoryWriter
}

// NewRecorder creates a Recorder consuming TopicBatchCompleted from bus.
func NewRecorder(bus *Bus, history HistoryWriter) *Recorder {
	r := &Recorder{history: history}
	r.handler = bus.NewMessageHandler(TopicBatchCompleted, r.handle)
	return r
}

func (r *Recorder) handle(ctx context.Context, msg *message.Message) error {
	var e BatchCompleted
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return fmt.Errorf("unmarshal batch event: %w", err)
	}

	entry := &store.HistoryEntry{
		ID:          e.BatchID,
		Source:      e.Source,
		Artifact:    e.Artifact,
		TotalRows:   e.TotalRows,
		Successful:  e.Successful,
		Failed:      e.Failed,
		SuccessRate: e.SuccessRate,
		Coverage:    e.Coverage,
		CreatedAt:   e.ProcessedAt,
	}
	if err := r.history.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("record batch %s: %w", e.BatchID, err)
	}

	logging.Ctx(logging.ContextWithBatchID(ctx, e.BatchID)).Debug().
		Int("rows", e.TotalRows).
		Msg("Batch recorded in history")
	return nil
}

// Serve implements suture.Service.
func (r *Recorder) Serve(ctx context.Context) error {
	return r.handler.Run(ctx)
}

// String implements fmt.Stringer for suture logging.
func (r *Recorder) String() string {
	return "history-recorder"
}
