package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
	"github.com/manjuvnair16/MLA-app-group3/internal/observability"
)

// CreationTimeFromID recovers the creation instant encoded in a time-ordered
// record identifier. Identifiers that carry no timestamp (hand-seeded or
// imported data) yield the fallback instead.
func CreationTimeFromID(id string, fallback time.Time) time.Time {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fallback
	}
	switch parsed.Version() {
	case 1, 2, 6, 7:
		sec, nsec := parsed.Time().UnixTime()
		return time.Unix(sec, nsec).UTC()
	default:
		return fallback
	}
}

// EnsureCreatedAt repairs a missing creation timestamp on a record read from
// the store. The timestamp is derived from the record's identifier, falling
// back to its activity date, and written back so later reads find it set.
// The write applies only while the field is still absent and is best effort:
// a store failure is logged and the derived value still returned, so every
// invocation for a record yields the same timestamp.
func (s *Service) EnsureCreatedAt(ctx context.Context, activity *Activity) time.Time {
	if !activity.CreatedAt.IsZero() {
		return activity.CreatedAt
	}

	derived := CreationTimeFromID(activity.ID, activity.Date)
	if err := s.repo.SetCreatedAtIfAbsent(ctx, activity.ID, derived); err != nil {
		logging.Warn("createdAt backfill not persisted",
			"activity_id", activity.ID,
			"error", err.Error(),
		)
		observability.RecordBackfill("failed")
	} else {
		observability.RecordBackfill("persisted")
	}
	activity.CreatedAt = derived
	return derived
}
