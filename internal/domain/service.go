package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manjuvnair16/MLA-app-group3/internal/aggregate"
	"github.com/manjuvnair16/MLA-app-group3/internal/events"
	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
	"github.com/manjuvnair16/MLA-app-group3/internal/observability"
	"github.com/manjuvnair16/MLA-app-group3/internal/timewindow"
)

var (
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidDate is returned when an activity date cannot be parsed.
	ErrInvalidDate = errors.New("invalid activity date")
)

// activityDateLayouts are the date shapes clients send, tried in order.
var activityDateLayouts = []string{time.RFC3339, "2006-01-02", "2006/01/02"}

// ParseActivityDate normalizes a client-supplied date to midnight UTC of its
// calendar day. Timestamps are converted to UTC before the day is taken.
func ParseActivityDate(value string) (time.Time, error) {
	for _, layout := range activityDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return timewindow.Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Service orchestrates activity recording and aggregation workflows.
type Service struct {
	repo      Repository
	publisher events.Publisher
	display   *time.Location
}

// NewService constructs a Service. display is the timezone journal times are
// rendered in; nil falls back to UTC.
func NewService(repo Repository, publisher events.Publisher, display *time.Location) *Service {
	if display == nil {
		display = time.UTC
	}
	return &Service{repo: repo, publisher: publisher, display: display}
}

// CreateActivityInput captures the payload from the API layer.
type CreateActivityInput struct {
	Username        string
	ExerciseType    string
	DurationMinutes float64
	Description     string
	Date            string
	Source          string
}

// CreateActivity normalizes and stores a workout record, then emits an
// activity.logged event. Event delivery is best effort; a publish failure
// never fails the create.
func (s *Service) CreateActivity(ctx context.Context, input CreateActivityInput) (*Activity, error) {
	date, err := ParseActivityDate(input.Date)
	if err != nil {
		return nil, err
	}

	activity := Activity{
		Username:        input.Username,
		ExerciseType:    input.ExerciseType,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		Date:            date,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, activity)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	activity.ID = id
	observability.RecordActivityPersisted(activity.CreatedAt)

	evt := events.ActivityLogged{
		ActivityID:      activity.ID,
		Username:        activity.Username,
		ExerciseType:    activity.ExerciseType,
		DurationMinutes: activity.DurationMinutes,
		Date:            activity.Date,
		CreatedAt:       activity.CreatedAt,
		Source:          input.Source,
	}
	if err := s.publisher.PublishActivityLogged(ctx, evt); err != nil {
		logging.Warn("activity event publish failed",
			"activity_id", activity.ID,
			"error", err.Error(),
		)
	}

	return &activity, nil
}

// ListAll returns every stored activity.
func (s *Service) ListAll(ctx context.Context) ([]Activity, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return records, nil
}

// AggregateAll computes per-type duration totals grouped by user, across all
// users.
func (s *Service) AggregateAll(ctx context.Context) ([]aggregate.UserSummary, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate activities: %w", err)
	}
	return aggregate.ByUserAndType(project(records)), nil
}

// AggregateForUser computes per-type duration totals for a single user. The
// result keeps the grouped-by-user shape, holding at most one entry.
func (s *Service) AggregateForUser(ctx context.Context, username string) ([]aggregate.UserSummary, error) {
	records, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("aggregate user activities: %w", err)
	}
	return aggregate.ByUserAndType(project(records)), nil
}

// DailyTrend returns the dense per-day duration series for the trailing
// seven days ending at ref. Days without records appear with zero totals.
func (s *Service) DailyTrend(ctx context.Context, username string, ref time.Time) ([]aggregate.TrendPoint, error) {
	w := timewindow.LastNDays(7, ref)
	records, err := s.repo.ListByUserInRange(ctx, username, w.Start, w.End, nil)
	if err != nil {
		return nil, fmt.Errorf("load trend window: %w", err)
	}
	return aggregate.FillDays(aggregate.ByDay(project(records)), w.Days), nil
}

// WeeklyJournal returns per-type duration totals inside an explicit date
// range, both endpoint days included.
func (s *Service) WeeklyJournal(ctx context.Context, username, startDate, endDate string) ([]aggregate.TypeTotal, error) {
	w, err := timewindow.ExplicitRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUserInRange(ctx, username, w.Start, w.End, nil)
	if err != nil {
		return nil, fmt.Errorf("load journal window: %w", err)
	}
	return aggregate.ByType(project(records)), nil
}

// WeeklySummary aggregates the running week, Monday up to ref, for one user.
func (s *Service) WeeklySummary(ctx context.Context, username string, ref time.Time) (*aggregate.WeekSummary, error) {
	w := timewindow.CurrentWeek(ref)
	records, err := s.repo.ListByUserInRange(ctx, username, w.Start, w.End, nil)
	if err != nil {
		return nil, fmt.Errorf("load week window: %w", err)
	}
	summary := aggregate.Summarize(aggregate.ByType(project(records)))
	return &summary, nil
}

// ActivitiesInRange lists a user's records inside an explicit date range,
// newest first, rendered for display. types optionally narrows the listing
// to the given exercise types. Records missing a creation timestamp are
// repaired on the way out.
func (s *Service) ActivitiesInRange(ctx context.Context, username, startDate, endDate string, types []string) ([]JournalEntry, error) {
	w, err := timewindow.ExplicitRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUserInRange(ctx, username, w.Start, w.End, types)
	if err != nil {
		return nil, fmt.Errorf("load journal range: %w", err)
	}

	entries := make([]JournalEntry, 0, len(records))
	for i := range records {
		createdAt := s.EnsureCreatedAt(ctx, &records[i])
		entries = append(entries, JournalEntry{
			ID:           records[i].ID,
			Username:     records[i].Username,
			Date:         records[i].Date.UTC().Format(timewindow.DayFormat),
			Time:         createdAt.In(s.display).Format("3:04 PM"),
			ActivityType: records[i].ExerciseType,
			Duration:     records[i].DurationMinutes,
			Comments:     records[i].Description,
			CreatedAt:    createdAt,
		})
	}
	return entries, nil
}

// UpdateComment replaces the free-text annotation on a record.
func (s *Service) UpdateComment(ctx context.Context, id, comment string) error {
	if err := s.repo.UpdateDescription(ctx, id, comment); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return err
		}
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func project(records []Activity) []aggregate.Record {
	out := make([]aggregate.Record, 0, len(records))
	for _, a := range records {
		out = append(out, aggregate.Record{
			Username:        a.Username,
			ExerciseType:    a.ExerciseType,
			DurationMinutes: a.DurationMinutes,
			Day:             a.Date.UTC().Format(timewindow.DayFormat),
		})
	}
	return out
}
