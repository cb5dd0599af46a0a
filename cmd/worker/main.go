package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/adapters/event"
	"github.com/devconnect/devconnect-api/adapters/persistence"
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

// The worker keeps the Redis profile-list cache honest: every profile
// mutation published on 'profile.events' drops the cached listing, so
// instances that did not handle the mutating request converge too.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect Worker...")

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	profileCache := persistence.NewRedisProfileCache(redisClient, appLogger)

	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-cache-invalidator",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents))

	ctx := context.Background()
	for {
		msg, err := profileConsumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(profileConsumer, msg, appLogger)
			continue
		}

		appLogger.Info("Processing profile event",
			zap.String("event_type", payload.EventType),
			zap.String("owner_id", payload.OwnerID.String()),
		)
		profileCache.Invalidate(ctx)

		commitMessage(profileConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
