package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes activity events to Kafka synchronously.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the activity events topic.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicActivityEvents,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// PublishActivityLogged writes one ActivityLogged message, keyed by username
// so a user's events stay ordered within a partition.
func (p *KafkaPublisher) PublishActivityLogged(ctx context.Context, evt ActivityLogged) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Username),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(TypeActivityLogged)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		publishFailedCounter.Inc()
		return err
	}
	publishedCounter.Inc()
	return nil
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
