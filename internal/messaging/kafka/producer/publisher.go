package producer

import (
	"context"

	"github.com/Yadlapure/health-care/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// toMessage keys by aggregate so every event of one visit lands on the same partition.
func toMessage(event kafka.OutboxEvent) kafkago.Message {
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
			{Key: "outbox_id", Value: []byte(event.ID)},
		},
	}
}
