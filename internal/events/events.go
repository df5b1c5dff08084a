// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package events carries batch lifecycle notifications over an in-process
// Watermill GoChannel bus. Publishers never block on consumers; a consumer
// that falls behind only delays its own topic.
package events

import (
	"time"
)

// Topics
const (
	TopicBatchCompleted = "batch.completed"
)

// BatchCompleted is published after a batch has been processed and its
// artifact stored.
type BatchCompleted struct {
	BatchID     string    `json:"batch_id"`
	RequestID   string    `json:"request_id,omitempty"`
	Source      string    `json:"source"`
	Artifact    string    `json:"artifact"`
	TotalRows   int       `json:"total_rows"`
	Successful  int       `json:"successful_predictions"`
	Failed      int       `json:"failed_predictions"`
	SuccessRate float64   `json:"success_rate"`
	Coverage    float64   `json:"coverage_percentage"`
	ProcessedAt time.Time `json:"processed_at"`
}
