package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devconnect/devconnect-api/internal/config"
)

const TopicProfileEvents = "profile.events"

const (
	EventProfileUpdated    = "profile.updated"
	EventProfileDeleted    = "profile.deleted"
	EventExperienceAdded   = "experience.added"
	EventExperienceRemoved = "experience.removed"
	EventEducationAdded    = "education.added"
	EventEducationRemoved  = "education.removed"
)

// ProfileEventPayload is the message shape on 'profile.events'. The
// worker keys cache invalidation off EventType alone.
type ProfileEventPayload struct {
	EventType  string    `json:"event_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{ProfileEventsWriter: profileWriter}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
