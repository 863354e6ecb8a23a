// Package memory provides an in-memory activity store for local development
// and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
)

// Repository stores activities in memory, preserving insertion order so
// listings and aggregations stay deterministic.
type Repository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]domain.Activity
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{records: make(map[string]domain.Activity)}
}

// Insert implements domain.Repository. IDs are UUIDv7 so they encode the
// insertion instant, matching the production store.
func (r *Repository) Insert(_ context.Context, activity domain.Activity) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.Must(uuid.NewV7()).String()
	activity.ID = id
	r.order = append(r.order, id)
	r.records[id] = activity
	return id, nil
}

// ListAll returns every record in insertion order.
func (r *Repository) ListAll(_ context.Context) ([]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Activity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}

// ListByUser returns one user's records in insertion order.
func (r *Repository) ListByUser(_ context.Context, username string) ([]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Activity, 0)
	for _, id := range r.order {
		if rec := r.records[id]; rec.Username == username {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListByUserInRange returns one user's records with start <= date < end,
// newest first, optionally narrowed to the given exercise types.
func (r *Repository) ListByUserInRange(_ context.Context, username string, start, end time.Time, types []string) ([]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Activity, 0)
	for _, id := range r.order {
		rec := r.records[id]
		if rec.Username != username {
			continue
		}
		if rec.Date.Before(start) || !rec.Date.Before(end) {
			continue
		}
		if len(types) > 0 && !slices.Contains(types, rec.ExerciseType) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// UpdateDescription implements domain.Repository.
func (r *Repository) UpdateDescription(_ context.Context, id, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return domain.ErrActivityNotFound
	}
	rec.Description = description
	r.records[id] = rec
	return nil
}

// SetCreatedAtIfAbsent stamps createdAt only when the record does not carry
// one yet.
func (r *Repository) SetCreatedAtIfAbsent(_ context.Context, id string, createdAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return domain.ErrActivityNotFound
	}
	if !rec.CreatedAt.IsZero() {
		return nil
	}
	rec.CreatedAt = createdAt
	r.records[id] = rec
	return nil
}

// SeedLegacy inserts a record without a creation timestamp and with the
// given identifier. Used by tests exercising the backfill path.
func (r *Repository) SeedLegacy(id string, activity domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = id
	activity.CreatedAt = time.Time{}
	r.order = append(r.order, id)
	r.records[id] = activity
}

// Get returns a record by ID, or nil when absent.
func (r *Repository) Get(_ context.Context, id string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
