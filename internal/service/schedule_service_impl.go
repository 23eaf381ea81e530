package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	// mu serializes reschedules within the process; the transaction
	// serializes them across processes.
	mu       sync.Mutex
	sessions repository.PlannedSessionRepo
	uow      db.UnitOfWork
	engine   *scheduler.Engine
	clock    func() time.Time
	observer UseCaseObserver
}

func NewScheduleService(
	sessions repository.PlannedSessionRepo,
	uow db.UnitOfWork,
	engine *scheduler.Engine,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		sessions: sessions,
		uow:      uow,
		engine:   engine,
		clock:    time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// WithClock overrides the time source of a ScheduleService built by
// NewScheduleService. Other implementations are returned unchanged.
func WithClock(svc ScheduleService, clock func() time.Time) ScheduleService {
	if s, ok := svc.(*scheduleService); ok {
		s.clock = clock
	}
	return svc
}

func (s *scheduleService) Reschedule(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error) {
	return s.run(ctx, req, nil)
}

func (s *scheduleService) Apply(ctx context.Context, trigger domain.RescheduleTrigger, m Mutation) (*app.ScheduleResponse, error) {
	return s.run(ctx, app.NewScheduleRequest(trigger), m)
}

func (s *scheduleService) Planned(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	return s.sessions.ListBetween(ctx, from, to)
}

func (s *scheduleService) run(ctx context.Context, req app.ScheduleRequest, m Mutation) (resp *app.ScheduleResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Trigger == "" {
		req.Trigger = domain.TriggerManual
	}
	startedAt := time.Now().UTC()
	fields := map[string]any{"trigger": string(req.Trigger)}
	defer observe(ctx, s.observer, "reschedule", startedAt, fields, &err)

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if m != nil {
			if err := m(ctx, tx); err != nil {
				return err
			}
		}
		var err error
		resp, err = s.replan(ctx, tx, req.Trigger, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	fields["sessions"] = len(resp.Sessions)
	fields["infeasible"] = len(resp.Infeasible)
	return resp, nil
}

// replan computes a fresh schedule from the stored snapshot and replaces the
// persisted plan with it.
func (s *scheduleService) replan(ctx context.Context, tx db.DBTX, trigger domain.RescheduleTrigger, now time.Time) (*app.ScheduleResponse, error) {
	items, err := repository.NewSQLiteWorkItemRepo(tx).List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	events, err := repository.NewSQLiteEventRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	itemValues := make([]domain.WorkItem, len(items))
	titles := make(map[string]string, len(items))
	for i, it := range items {
		itemValues[i] = *it
		titles[it.ID] = it.Title
	}
	eventValues := make([]domain.Event, len(events))
	for i, e := range events {
		eventValues[i] = *e
	}

	result, err := s.engine.Schedule(itemValues, eventValues, now)
	if err != nil {
		var verr *scheduler.ValidationError
		if errors.As(err, &verr) {
			return nil, &app.ScheduleError{Code: app.ScheduleErrInvalidInput, Message: verr.Error(), Err: err}
		}
		return nil, &app.ScheduleError{Code: app.ScheduleErrInternal, Message: err.Error(), Err: err}
	}

	createdAt := now.UTC().Truncate(time.Second)
	for i := range result.Sessions {
		result.Sessions[i].ID = uuid.New().String()
		result.Sessions[i].CreatedAt = createdAt
	}

	if err := repository.NewSQLitePlannedSessionRepo(tx).ReplaceAll(ctx, result.Sessions, trigger); err != nil {
		return nil, fmt.Errorf("persisting plan: %w", err)
	}

	return &app.ScheduleResponse{
		GeneratedAt: now,
		Trigger:     trigger,
		Sessions:    result.Sessions,
		Infeasible:  result.Infeasible,
		Days:        result.Days,
		Titles:      titles,
	}, nil
}
