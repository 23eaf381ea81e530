package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_Create_MovesSessionsAround(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	wi := testutil.NewTestWorkItem("Lab report",
		testutil.WithStrict(true), testutil.WithHours(2, 0), testutil.WithDeadline(at(3, 18, 0)))
	resp, err := h.workItems.Create(ctx, wi)
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)
	assert.True(t, resp.Sessions[0].Start.Equal(at(3, 12, 0)))

	resp, err = h.events.Create(ctx, &domain.Event{Title: "Lecture", Start: at(3, 12, 0), End: at(3, 14, 0)})
	require.NoError(t, err)
	assert.Equal(t, domain.TriggerEventChanged, resp.Trigger)
	require.Len(t, resp.Sessions, 1)
	assert.True(t, resp.Sessions[0].Start.Equal(at(3, 14, 0)))
	assert.True(t, resp.Sessions[0].End.Equal(at(3, 16, 0)))
}

func TestEventService_Create_MakesItemInfeasible(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	wi := testutil.NewTestWorkItem("Quiz prep",
		testutil.WithStrict(true), testutil.WithHours(2, 0), testutil.WithDeadline(at(3, 18, 0)))
	_, err := h.workItems.Create(ctx, wi)
	require.NoError(t, err)

	resp, err := h.events.Create(ctx, &domain.Event{Title: "Shift", Start: at(3, 11, 0), End: at(3, 17, 0)})
	require.NoError(t, err)
	assert.Empty(t, resp.Sessions)
	require.Len(t, resp.Infeasible, 1)
	assert.Equal(t, wi.ID, resp.Infeasible[0].WorkItemID)
	assert.InDelta(t, 2.0, resp.Infeasible[0].MissingHours, 1e-9)
}

func TestEventService_Create_RejectsInvalid(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.events.Create(ctx, &domain.Event{Title: "Backwards", Start: at(3, 14, 0), End: at(3, 13, 0)})
	assert.ErrorContains(t, err, "must be after start")

	_, err = h.events.Create(ctx, &domain.Event{Title: "Instant", Start: at(3, 14, 0), End: at(3, 14, 0)})
	assert.Error(t, err)

	events, err := h.events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventService_Delete_FreesTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ev := &domain.Event{Title: "Blocker", Start: at(3, 12, 0), End: at(3, 18, 0)}
	_, err := h.events.Create(ctx, ev)
	require.NoError(t, err)

	wi := testutil.NewTestWorkItem("Essay",
		testutil.WithStrict(true), testutil.WithHours(2, 0), testutil.WithDeadline(at(3, 18, 0)))
	resp, err := h.workItems.Create(ctx, wi)
	require.NoError(t, err)
	require.Len(t, resp.Infeasible, 1)

	resp, err = h.events.Delete(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Infeasible)
	require.Len(t, resp.Sessions, 1)

	_, err = h.events.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventService_ListBetween(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, e := range []*domain.Event{
		{Title: "Mon", Start: at(3, 9, 0), End: at(3, 10, 0)},
		{Title: "Tue", Start: at(4, 9, 0), End: at(4, 10, 0)},
	} {
		_, err := h.events.Create(ctx, e)
		require.NoError(t, err)
	}

	got, err := h.events.ListBetween(ctx, at(4, 0, 0), at(5, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tue", got[0].Title)
}
