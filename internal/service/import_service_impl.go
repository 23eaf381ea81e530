package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/importer"
	"github.com/alexanderramin/studyplan/internal/repository"
)

type importService struct {
	schedule ScheduleService
	observer UseCaseObserver
}

func NewImportService(schedule ScheduleService, observers ...UseCaseObserver) ImportService {
	return &importService{schedule: schedule, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*app.ImportResult, error) {
	snapshot, err := importer.LoadSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSnapshot(ctx, snapshot)
}

// ImportSnapshot replaces every stored work item and event with the snapshot
// contents and reschedules, all in one transaction.
func (s *importService) ImportSnapshot(ctx context.Context, snapshot *importer.Snapshot) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"work_items": len(snapshot.WorkItems),
		"events":     len(snapshot.Events),
	}
	defer observe(ctx, s.observer, "import", startedAt, fields, &err)

	if errs := importer.ValidateSnapshot(snapshot); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(snapshot, startedAt.Truncate(time.Second))
	if err != nil {
		return nil, fmt.Errorf("converting snapshot: %w", err)
	}

	resp, err := s.schedule.Apply(ctx, domain.TriggerImport, func(ctx context.Context, tx db.DBTX) error {
		workItems := repository.NewSQLiteWorkItemRepo(tx)
		events := repository.NewSQLiteEventRepo(tx)

		if err := clearStore(ctx, workItems, events); err != nil {
			return err
		}
		for _, w := range converted.WorkItems {
			if err := workItems.Create(ctx, w); err != nil {
				return fmt.Errorf("creating work item %q: %w", w.Title, err)
			}
		}
		for _, e := range converted.Events {
			if err := events.Create(ctx, e); err != nil {
				return fmt.Errorf("creating event %q: %w", e.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &app.ImportResult{
		WorkItemCount: len(converted.WorkItems),
		EventCount:    len(converted.Events),
		Schedule:      resp,
	}, nil
}

func clearStore(ctx context.Context, workItems repository.WorkItemRepo, events repository.EventRepo) error {
	existing, err := workItems.List(ctx, true)
	if err != nil {
		return err
	}
	for _, w := range existing {
		if err := workItems.Delete(ctx, w.ID); err != nil {
			return fmt.Errorf("removing work item %s: %w", w.ID, err)
		}
	}
	existingEvents, err := events.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range existingEvents {
		if err := events.Delete(ctx, e.ID); err != nil {
			return fmt.Errorf("removing event %s: %w", e.ID, err)
		}
	}
	return nil
}

// formatValidationErrors combines snapshot problems into one error that still
// unwraps to each of them.
func formatValidationErrors(errs []error) error {
	return fmt.Errorf("import validation failed (%d problems):\n%w", len(errs), errors.Join(errs...))
}
