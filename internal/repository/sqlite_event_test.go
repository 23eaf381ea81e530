package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestEventRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEvent("Lecture", at(3, 13), at(3, 15))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lecture", got.Title)
	assert.True(t, got.Start.Equal(e.Start))
	assert.True(t, got.End.Equal(e.End))
}

func TestEventRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_List_OrderedByStart(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	late := testutil.NewTestEvent("Late", at(5, 12), at(5, 13))
	early := testutil.NewTestEvent("Early", at(3, 12), at(3, 13))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Title)
	assert.Equal(t, "Late", got[1].Title)
}

func TestEventRepo_ListBetween_HalfOpenOverlap(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	before := testutil.NewTestEvent("Before", at(3, 10), at(3, 12))
	straddle := testutil.NewTestEvent("Straddle", at(3, 11), at(3, 13))
	inside := testutil.NewTestEvent("Inside", at(3, 14), at(3, 15))
	after := testutil.NewTestEvent("After", at(3, 18), at(3, 19))
	for _, e := range []*domain.Event{before, straddle, inside, after} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListBetween(ctx, at(3, 12), at(3, 18))
	require.NoError(t, err)
	var titles []string
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Straddle", "Inside"}, titles)
}

func TestEventRepo_Delete(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEvent("Dentist", at(4, 14), at(4, 15))
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}
