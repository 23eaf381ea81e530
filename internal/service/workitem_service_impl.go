package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
)

type workItemService struct {
	workItems repository.WorkItemRepo
	progress  repository.ProgressRepo
	sessions  repository.PlannedSessionRepo
	schedule  ScheduleService
	clock     func() time.Time
}

func NewWorkItemService(
	workItems repository.WorkItemRepo,
	progress repository.ProgressRepo,
	sessions repository.PlannedSessionRepo,
	schedule ScheduleService,
) WorkItemService {
	return &workItemService{
		workItems: workItems,
		progress:  progress,
		sessions:  sessions,
		schedule:  schedule,
		clock:     time.Now,
	}
}

func (s *workItemService) now() time.Time {
	return s.clock().UTC().Truncate(time.Second)
}

func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) (*app.ScheduleResponse, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Title = strings.TrimSpace(w.Title)
	if w.Title == "" {
		return nil, fmt.Errorf("work item title is required")
	}
	now := s.now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := w.Validate(); err != nil {
		return nil, err
	}

	return s.schedule.Apply(ctx, domain.TriggerWorkItemChanged, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkItemRepo(tx).Create(ctx, w)
	})
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) List(ctx context.Context, includeRetired bool) ([]*domain.WorkItem, error) {
	return s.workItems.List(ctx, includeRetired)
}

func (s *workItemService) Update(ctx context.Context, w *domain.WorkItem) (*app.ScheduleResponse, error) {
	w.UpdatedAt = s.now()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return s.schedule.Apply(ctx, domain.TriggerWorkItemChanged, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkItemRepo(tx).Update(ctx, w)
	})
}

func (s *workItemService) Delete(ctx context.Context, id string) (*app.ScheduleResponse, error) {
	return s.schedule.Apply(ctx, domain.TriggerWorkItemChanged, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkItemRepo(tx).Delete(ctx, id)
	})
}

// LogProgress records completed hours against an item and reschedules the
// remainder. Hours beyond what the item still needs are not recorded.
func (s *workItemService) LogProgress(ctx context.Context, l *domain.ProgressLog) (*app.ScheduleResponse, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.LoggedAt.IsZero() {
		l.LoggedAt = s.now()
	}

	return s.schedule.Apply(ctx, domain.TriggerProgressLogged, func(ctx context.Context, tx db.DBTX) error {
		txWorkItems := repository.NewSQLiteWorkItemRepo(tx)

		wi, err := txWorkItems.GetByID(ctx, l.WorkItemID)
		if err != nil {
			return err
		}
		before := wi.CompletedHours
		if err := wi.ApplyProgress(l.Hours, s.now()); err != nil {
			return err
		}
		l.Hours = wi.CompletedHours - before

		if err := txWorkItems.Update(ctx, wi); err != nil {
			return err
		}
		return repository.NewSQLiteProgressRepo(tx).Create(ctx, l)
	})
}

func (s *workItemService) ListProgress(ctx context.Context, workItemID string) ([]*domain.ProgressLog, error) {
	return s.progress.ListByWorkItem(ctx, workItemID)
}

func (s *workItemService) ListSessions(ctx context.Context, workItemID string) ([]*domain.Session, error) {
	return s.sessions.ListByWorkItem(ctx, workItemID)
}
