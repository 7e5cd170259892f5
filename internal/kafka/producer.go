package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
)

type Producer struct {
	assetWriter   *kafka.Writer
	sharingWriter *kafka.Writer
}

// NewProducer creates a Kafka producer with writers for both topics.
func NewProducer(brokers []string) *Producer {
	assetWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        events.AssetChangesTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	sharingWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        events.SharingActivityTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{
		assetWriter:   assetWriter,
		sharingWriter: sharingWriter,
	}
}

// PublishAssetEvent publishes an asset event to the asset.changes topic.
func (p *Producer) PublishAssetEvent(ctx context.Context, event *events.AssetEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.AssetID),
		Value: value,
		Time:  event.Timestamp,
	}

	if err := p.assetWriter.WriteMessages(ctx, message); err != nil {
		logger.Log.Error().Err(err).Str("eventType", event.EventType).Msg("Failed to publish asset event")
		return err
	}

	logger.Log.Info().
		Str("eventType", event.EventType).
		Str("assetType", event.AssetType).
		Str("assetId", event.AssetID).
		Msg("Published asset event")
	return nil
}

// PublishSharingEvent publishes a sharing event to the sharing.activity topic.
func (p *Producer) PublishSharingEvent(ctx context.Context, event *events.SharingEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.FolderID),
		Value: value,
		Time:  event.Timestamp,
	}

	if err := p.sharingWriter.WriteMessages(ctx, message); err != nil {
		logger.Log.Error().Err(err).Str("eventType", event.EventType).Msg("Failed to publish sharing event")
		return err
	}

	logger.Log.Info().
		Str("eventType", event.EventType).
		Str("folderId", event.FolderID).
		Msg("Published sharing event")
	return nil
}

// Close closes the Kafka writers.
func (p *Producer) Close() error {
	var err1, err2 error
	if p.assetWriter != nil {
		err1 = p.assetWriter.Close()
	}
	if p.sharingWriter != nil {
		err2 = p.sharingWriter.Close()
	}

	if err1 != nil {
		return err1
	}
	return err2
}
