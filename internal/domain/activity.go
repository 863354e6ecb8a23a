// Package domain defines the business logic for the workout analytics
// service.
package domain

import (
	"context"
	"time"
)

// Activity is one recorded workout.
type Activity struct {
	ID              string
	Username        string
	ExerciseType    string
	DurationMinutes float64
	Description     string
	Date            time.Time // calendar day of the workout, midnight UTC
	CreatedAt       time.Time // zero when the record predates creation stamping
}

// JournalEntry is the display form of one record in a date-range listing.
// Date is the workout's calendar day; Time is the creation clock time in the
// configured display timezone.
type JournalEntry struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	ActivityType string    `json:"activityType"`
	Duration     float64   `json:"duration"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository captures persistence operations over activity records.
// Range listings treat end as exclusive and return records newest first.
type Repository interface {
	Insert(ctx context.Context, activity Activity) (string, error)
	ListAll(ctx context.Context) ([]Activity, error)
	ListByUser(ctx context.Context, username string) ([]Activity, error)
	ListByUserInRange(ctx context.Context, username string, start, end time.Time, types []string) ([]Activity, error)
	UpdateDescription(ctx context.Context, id, description string) error
	SetCreatedAtIfAbsent(ctx context.Context, id string, createdAt time.Time) error
}
