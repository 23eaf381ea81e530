package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

var ErrNotFound = errors.New("not found")

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	// List returns items ordered by deadline then ID. Retired items are
	// omitted unless includeRetired is set.
	List(ctx context.Context, includeRetired bool) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// ListBetween returns events overlapping [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type PlannedSessionRepo interface {
	// ReplaceAll discards every stored session and writes the given set.
	ReplaceAll(ctx context.Context, sessions []domain.Session, generatedBy domain.RescheduleTrigger) error
	List(ctx context.Context) ([]*domain.Session, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
	ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.Session, error)
}

type ProgressRepo interface {
	Create(ctx context.Context, l *domain.ProgressLog) error
	ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.ProgressLog, error)
}
