// Package events publishes activity lifecycle messages for downstream
// consumers.
package events

import (
	"context"
	"time"

	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
)

// TopicActivityEvents is the Kafka topic activity messages land on.
const TopicActivityEvents = "activity_events"

// TypeActivityLogged is the event_type header value for ActivityLogged.
const TypeActivityLogged = "activity.logged"

// ActivityLogged represents the message emitted when a workout record is
// accepted.
type ActivityLogged struct {
	ActivityID      string    `json:"activity_id"`
	Username        string    `json:"username"`
	ExerciseType    string    `json:"exercise_type"`
	DurationMinutes float64   `json:"duration_minutes"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source,omitempty"`
}

// Publisher delivers activity events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishActivityLogged(ctx context.Context, evt ActivityLogged) error
}

// LogPublisher logs events instead of delivering them, so local runs need no
// broker.
type LogPublisher struct{}

// PublishActivityLogged records the event in the service log.
func (LogPublisher) PublishActivityLogged(_ context.Context, evt ActivityLogged) error {
	logging.Info("activity event (publish disabled)",
		"activity_id", evt.ActivityID,
		"username", evt.Username,
		"exercise_type", evt.ExerciseType,
	)
	return nil
}
