package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
)

type eventService struct {
	events   repository.EventRepo
	schedule ScheduleService
}

func NewEventService(events repository.EventRepo, schedule ScheduleService) EventService {
	return &eventService{events: events, schedule: schedule}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) (*app.ScheduleResponse, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Title = strings.TrimSpace(e.Title)
	e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return s.schedule.Apply(ctx, domain.TriggerEventChanged, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteEventRepo(tx).Create(ctx, e)
	})
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	return s.events.ListBetween(ctx, from, to)
}

func (s *eventService) Delete(ctx context.Context, id string) (*app.ScheduleResponse, error) {
	return s.schedule.Apply(ctx, domain.TriggerEventChanged, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteEventRepo(tx).Delete(ctx, id)
	})
}
