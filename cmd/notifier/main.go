package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Psedro/IPVCNotes-VF/internal/config"
	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/internal/kafka"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
)

// The notifier tails sharing activity so grants, revocations and edit
// requests show up in one place.
func main() {
	cfg := config.Load()
	logger.InitConsoleLogger()

	if cfg.KafkaBrokers == "" {
		logger.Log.Fatal().Msg("KAFKA_BROKERS not set")
	}
	brokers := strings.Split(cfg.KafkaBrokers, ",")

	consumer := kafka.NewConsumer(brokers, "sharing-notifier")

	logSharing := func(event events.SharingEvent) error {
		entry := logger.Log.Info().
			Str("eventType", event.EventType).
			Str("folderId", event.FolderID).
			Str("ownerId", event.OwnerID).
			Str("actionBy", event.ActionBy)
		if event.SharedWithUserID != nil {
			entry = entry.Str("sharedWith", *event.SharedWithUserID)
		}
		if event.AccessLevel != nil {
			entry = entry.Str("accessLevel", *event.AccessLevel)
		}
		if event.RequestStatus != nil {
			entry = entry.Str("requestStatus", *event.RequestStatus)
		}
		entry.Msg("sharing activity")
		return nil
	}

	for _, eventType := range []string{
		events.FolderShared,
		events.ShareUpdated,
		events.FolderUnshared,
		events.EditRequestCreated,
		events.EditRequestClosed,
	} {
		consumer.RegisterHandler(eventType, logSharing)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.Start(ctx)
	logger.Log.Info().Msg("notifier started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info().Msg("shutting down notifier")
	cancel()
	consumer.Close()
}
