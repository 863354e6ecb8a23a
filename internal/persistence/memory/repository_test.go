package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestListByUserInRangeBoundaries(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, d := range []int{1, 5, 10} {
		_, err := repo.Insert(ctx, domain.Activity{Username: "alice", ExerciseType: "Running", Date: day(d)})
		require.NoError(t, err)
	}

	got, err := repo.ListByUserInRange(ctx, "alice", day(1), day(10), nil)
	require.NoError(t, err)
	require.Len(t, got, 2, "start is inclusive, end exclusive")
	require.Equal(t, day(5), got[0].Date, "newest first")
	require.Equal(t, day(1), got[1].Date)
}

func TestListByUserInRangeTypeMembership(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, et := range []string{"Running", "Gym", "Swimming"} {
		_, err := repo.Insert(ctx, domain.Activity{Username: "alice", ExerciseType: et, Date: day(5)})
		require.NoError(t, err)
	}

	got, err := repo.ListByUserInRange(ctx, "alice", day(1), day(10), []string{"Gym", "Swimming"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, rec := range got {
		require.NotEqual(t, "Running", rec.ExerciseType)
	}
}

func TestSetCreatedAtIfAbsentKeepsExisting(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	stamped := time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, domain.Activity{Username: "alice", ExerciseType: "Running", Date: day(5), CreatedAt: stamped})
	require.NoError(t, err)

	require.NoError(t, repo.SetCreatedAtIfAbsent(ctx, id, time.Now().UTC()))

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, stamped, rec.CreatedAt, "existing timestamp wins")

	require.ErrorIs(t, repo.SetCreatedAtIfAbsent(ctx, "missing", stamped), domain.ErrActivityNotFound)
}

func TestUpdateDescriptionMissing(t *testing.T) {
	repo := NewRepository()

	err := repo.UpdateDescription(context.Background(), "missing", "text")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}
