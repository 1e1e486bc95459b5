//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// newEvent stamps an event with a fresh id and the current time.
func newEvent(eventType, userID, gameID string) models.MembershipEvent {
	return models.MembershipEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		GameID:    gameID,
		Timestamp: time.Now().Unix(),
	}
}

// publishEvent publishes a membership event to Kafka. Failures are logged
// and never reach the caller: the records are already written.
func publishEvent(ctx context.Context, w KafkaWriter, ev models.MembershipEvent) {
	if w == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", ev.EventID, "type", ev.Type)
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", ev.EventID, "error", err)
		return
	}

	key := ev.GameID
	if key == "" {
		key = ev.UserID
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", ev.EventID, "type", ev.Type, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", ev.EventID, "type", ev.Type, "game_id", ev.GameID)
	}
}
