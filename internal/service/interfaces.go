package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/importer"
)

// Mutation is a write against the store that must be followed by a reschedule.
type Mutation func(ctx context.Context, tx db.DBTX) error

type ScheduleService interface {
	app.ScheduleUseCase
	// Apply runs m and the reschedule it triggers in one transaction.
	Apply(ctx context.Context, trigger domain.RescheduleTrigger, m Mutation) (*app.ScheduleResponse, error)
	// Planned returns persisted sessions overlapping [from, to).
	Planned(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
}

type WorkItemService interface {
	app.LogProgressUseCase
	Create(ctx context.Context, w *domain.WorkItem) (*app.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context, includeRetired bool) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) (*app.ScheduleResponse, error)
	Delete(ctx context.Context, id string) (*app.ScheduleResponse, error)
	ListProgress(ctx context.Context, workItemID string) ([]*domain.ProgressLog, error)
	ListSessions(ctx context.Context, workItemID string) ([]*domain.Session, error)
}

type EventService interface {
	Create(ctx context.Context, e *domain.Event) (*app.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) (*app.ScheduleResponse, error)
}

type ImportService interface {
	app.ImportSnapshotUseCase
	ImportSnapshot(ctx context.Context, s *importer.Snapshot) (*app.ImportResult, error)
}
