// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// HandlerFunc processes one message. A returned error is logged and counted.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// MessageHandler consumes one topic until its context is done.
type MessageHandler struct {
	bus     *Bus
	topic   string
	handler HandlerFunc
	logger  watermill.LoggerAdapter
}

// NewMessageHandler creates a handler for topic.
func (b *Bus) NewMessageHandler(topic string, fn HandlerFunc) *MessageHandler {
	return &MessageHandler{
		bus:     b,
		topic:   topic,
		handler: fn,
		logger:  logging.NewWatermillAdapter().With(watermill.LogFields{"topic": topic}),
	}
}

// Run processes messages until ctx is canceled or the bus closes.
func (h *MessageHandler) Run(ctx context.Context) error {
	messages, err := h.bus.Subscribe(ctx, h.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := h.process(msg); err != nil {
				h.logger.Error("Message processing failed", err, watermill.LogFields{
					"message_uuid": msg.UUID,
				})
			}
		}
	}
}

func (h *MessageHandler) process(msg *message.Message) error {
	ctx := msg.Context()
	if id := msg.Metadata.Get("request_id"); id != "" {
		ctx = logging.ContextWithRequestID(ctx, id)
	}

	if err := h.handler(ctx, msg); err != nil {
		metrics.RecordEventHandled(h.topic, false)
		// gochannel redelivers nacked messages; failures are not retried.
		msg.Ack()
		return err
	}
	metrics.RecordEventHandled(h.topic, true)
	msg.Ack()
	return nil
}
