// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// ErrBusClosed is returned when publishing to a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// Bus is an in-process publish/subscribe bus. A nil *Bus is valid and
// drops everything published to it.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus whose subscribers buffer up to buffer messages.
func NewBus(buffer int64) *Bus {
	logger := logging.NewWatermillAdapter()
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: buffer,
		}, logger),
		logger: logger,
	}
}

// Publish marshals payload to JSON and publishes it on topic. The request
// id carried by ctx, if any, travels in the message metadata.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}

// PublishBatchCompleted publishes e on TopicBatchCompleted.
func (b *Bus) PublishBatchCompleted(ctx context.Context, e *BatchCompleted) error {
	return b.Publish(ctx, TopicBatchCompleted, e)
}

// Subscribe returns the message stream for topic. The channel closes when
// ctx is done or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b == nil {
		return nil, ErrBusClosed
	}
	return b.pubsub.Subscribe(ctx, topic)
}

// Close stops the bus and closes every subscription.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
