package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkItemRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	deadline := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	w := testutil.NewTestWorkItem("Essay",
		testutil.WithDeadline(deadline),
		testutil.WithStrict(true),
		testutil.WithHours(6.5, 1.25),
	)
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, "Essay", got.Title)
	assert.True(t, got.Deadline.Equal(deadline))
	assert.True(t, got.Strict)
	assert.InDelta(t, 6.5, got.RequiredHours, 1e-9)
	assert.InDelta(t, 1.25, got.CompletedHours, 1e-9)
	assert.True(t, got.CreatedAt.Equal(w.CreatedAt))
}

func TestWorkItemRepo_DeadlineStoredInUTC(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	zone := time.FixedZone("UTC+2", 2*3600)
	deadline := time.Date(2025, 3, 10, 18, 0, 0, 0, zone)
	w := testutil.NewTestWorkItem("Lab", testutil.WithDeadline(deadline))
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Deadline.Equal(deadline))
	assert.Equal(t, time.UTC, got.Deadline.Location())
}

func TestWorkItemRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_List_OrderedByDeadlineThenID(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := testutil.Reference
	items := []struct {
		id       string
		deadline time.Time
	}{
		{"c", base.AddDate(0, 0, 2)},
		{"b", base.AddDate(0, 0, 1)},
		{"a", base.AddDate(0, 0, 2)},
	}
	for _, it := range items {
		require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem(it.id,
			testutil.WithWorkItemID(it.id), testutil.WithDeadline(it.deadline))))
	}

	got, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestWorkItemRepo_List_RetiredFilter(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	open := testutil.NewTestWorkItem("Open", testutil.WithHours(4, 1))
	done := testutil.NewTestWorkItem("Done", testutil.WithHours(4, 4))
	require.NoError(t, repo.Create(ctx, open))
	require.NoError(t, repo.Create(ctx, done))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkItemRepo_Update(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorkItem("Reading")
	require.NoError(t, repo.Create(ctx, w))

	w.Title = "Reading ch. 4"
	w.CompletedHours = 2
	w.Strict = true
	w.UpdatedAt = w.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading ch. 4", got.Title)
	assert.InDelta(t, 2.0, got.CompletedHours, 1e-9)
	assert.True(t, got.Strict)
	assert.True(t, got.UpdatedAt.Equal(w.UpdatedAt))
}

func TestWorkItemRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestWorkItem("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_Delete(t *testing.T) {
	repo := NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorkItem("Temp")
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.Delete(ctx, w.ID))

	_, err := repo.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, w.ID), ErrNotFound)
}
