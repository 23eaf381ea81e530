package testutil

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/google/uuid"
)

// Reference is a fixed Monday morning used as "now" across tests.
var Reference = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithDeadline(d time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Deadline = d
	}
}

func WithStrict(strict bool) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Strict = strict
	}
}

func WithHours(required, completed float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.RequiredHours = required
		w.CompletedHours = completed
	}
}

func WithWorkItemID(id string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.ID = id
	}
}

// NewTestWorkItem returns a flexible 4h item due a week after Reference.
func NewTestWorkItem(title string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WorkItem{
		ID:            uuid.New().String(),
		Title:         title,
		Deadline:      Reference.AddDate(0, 0, 7),
		RequiredHours: 4,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestEvent(title string, start, end time.Time) *domain.Event {
	return &domain.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestSession(workItemID string, start time.Time, d time.Duration) *domain.Session {
	return &domain.Session{
		ID:         uuid.New().String(),
		WorkItemID: workItemID,
		Start:      start,
		End:        start.Add(d),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestProgressLog(workItemID string, hours float64, note string) *domain.ProgressLog {
	return &domain.ProgressLog{
		ID:         uuid.New().String(),
		WorkItemID: workItemID,
		Hours:      hours,
		Note:       note,
		LoggedAt:   time.Now().UTC().Truncate(time.Second),
	}
}
