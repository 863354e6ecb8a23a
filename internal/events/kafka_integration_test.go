//go:build integration

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func TestKafkaPublishActivityLogged(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx, testcontainers.WithEnv(map[string]string{
		"KAFKA_AUTO_CREATE_TOPICS_ENABLE": "true",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	broker := brokers[0]

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             TopicActivityEvents,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))

	publisher := NewKafkaPublisher([]string{broker})
	defer publisher.Close()

	evt := ActivityLogged{
		ActivityID:      "act-int",
		Username:        "alice",
		ExerciseType:    "Running",
		DurationMinutes: 30,
		Date:            time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
		Source:          "integration-test",
	}
	require.NoError(t, publisher.PublishActivityLogged(ctx, evt))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		GroupID:     "analytics-integration",
		Topic:       TopicActivityEvents,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", string(msg.Key))

	var got ActivityLogged
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, evt.ActivityID, got.ActivityID)
	require.Equal(t, evt.ExerciseType, got.ExerciseType)
	require.Equal(t, evt.DurationMinutes, got.DurationMinutes)
	require.True(t, got.Date.Equal(evt.Date), "got date %v", got.Date)
	require.Equal(t, evt.Source, got.Source)

	var eventType string
	for _, header := range msg.Headers {
		if header.Key == "event_type" {
			eventType = string(header.Value)
		}
	}
	require.Equal(t, TypeActivityLogged, eventType)
}
