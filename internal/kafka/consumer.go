package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
)

type SharingEventHandler func(event events.SharingEvent) error

// Consumer reads sharing activity from Kafka and dispatches per event
// type.
type Consumer struct {
	reader   *kafka.Reader
	handlers map[string][]SharingEventHandler
}

// NewConsumer creates a consumer group member on the sharing topic.
func NewConsumer(brokers []string, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   events.SharingActivityTopic,
	})

	return &Consumer{
		reader:   reader,
		handlers: make(map[string][]SharingEventHandler),
	}
}

// RegisterHandler registers a handler for a specific event type.
func (c *Consumer) RegisterHandler(eventType string, handler SharingEventHandler) {
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start consumes until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log.Error().Err(err).Msg("reading sharing event failed")
			continue
		}

		var event events.SharingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Log.Error().Err(err).Msg("unmarshalling sharing event failed")
			continue
		}

		for _, handler := range c.handlers[event.EventType] {
			if err := handler(event); err != nil {
				logger.Log.Error().Err(err).Str("eventType", event.EventType).Msg("handling sharing event failed")
			}
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
