// Package firestore implements the activity store on Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
)

// Repository stores activities in a Firestore collection. Document IDs are
// UUIDv7: identifiers sort by creation time and encode their creation
// instant, which the backfill path relies on. Listings without an explicit
// order come back in document-ID order, which is therefore insertion order.
type Repository struct {
	client     *firestore.Client
	activities *firestore.CollectionRef
}

// NewRepository wraps a Firestore client for the given collection.
func NewRepository(client *firestore.Client, collection string) *Repository {
	return &Repository{client: client, activities: client.Collection(collection)}
}

// Insert implements domain.Repository.
func (r *Repository) Insert(ctx context.Context, activity domain.Activity) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()
	if _, err := r.activities.Doc(id).Create(ctx, activityToDoc(&activity)); err != nil {
		return "", fmt.Errorf("create activity document: %w", err)
	}
	return id, nil
}

// ListAll returns every record in the collection.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Activity, error) {
	return collect(r.activities.Documents(ctx))
}

// ListByUser returns one user's records.
func (r *Repository) ListByUser(ctx context.Context, username string) ([]domain.Activity, error) {
	q := r.activities.Where("username", "==", username)
	return collect(q.Documents(ctx))
}

// ListByUserInRange returns records with start <= date < end, newest first,
// optionally narrowed to the given exercise types.
func (r *Repository) ListByUserInRange(ctx context.Context, username string, start, end time.Time, types []string) ([]domain.Activity, error) {
	q := r.activities.
		Where("username", "==", username).
		Where("date", ">=", start).
		Where("date", "<", end)
	if len(types) > 0 {
		q = q.Where("exerciseType", "in", types)
	}
	return collect(q.OrderBy("date", firestore.Desc).Documents(ctx))
}

// UpdateDescription implements domain.Repository.
func (r *Repository) UpdateDescription(ctx context.Context, id, description string) error {
	_, err := r.activities.Doc(id).Update(ctx, []firestore.Update{
		{Path: "description", Value: description},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("update description: %w", err)
	}
	return nil
}

// SetCreatedAtIfAbsent stamps createdAt inside a transaction. The write
// applies only while the field is missing, so concurrent repairs of the same
// record converge on the first value written.
func (r *Repository) SetCreatedAtIfAbsent(ctx context.Context, id string, createdAt time.Time) error {
	doc := r.activities.Doc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if err != nil {
			return err
		}
		if _, ok := snap.Data()["createdAt"]; ok {
			return nil
		}
		return tx.Update(doc, []firestore.Update{{Path: "createdAt", Value: createdAt}})
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("backfill createdAt: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Repository) Close() error {
	return r.client.Close()
}

func collect(iter *firestore.DocumentIterator) ([]domain.Activity, error) {
	defer iter.Stop()

	out := make([]domain.Activity, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate activities: %w", err)
		}
		out = append(out, activityFromDoc(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}
