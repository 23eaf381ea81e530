package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/alexanderramin/studyplan/internal/testutil"
)

type harness struct {
	db        *sql.DB
	observer  *recordingObserver
	schedule  ScheduleService
	workItems WorkItemService
	events    EventService
	imports   ImportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}

	policy := scheduler.DefaultPolicy()
	policy.Location = time.UTC

	sessions := repository.NewSQLitePlannedSessionRepo(database)
	schedule := WithClock(
		NewScheduleService(sessions, testutil.NewTestUoW(database), scheduler.New(policy), obs),
		func() time.Time { return testutil.Reference },
	)

	return &harness{
		db:       database,
		observer: obs,
		schedule: schedule,
		workItems: NewWorkItemService(
			repository.NewSQLiteWorkItemRepo(database),
			repository.NewSQLiteProgressRepo(database),
			sessions,
			schedule,
		),
		events:  NewEventService(repository.NewSQLiteEventRepo(database), schedule),
		imports: NewImportService(schedule, obs),
	}
}

// at returns a UTC instant in the week of testutil.Reference (Mon 3 March 2025).
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func (h *harness) planned(t *testing.T) []*domain.Session {
	t.Helper()
	sessions, err := h.schedule.Planned(context.Background(), at(1, 0, 0), at(31, 0, 0))
	if err != nil {
		t.Fatalf("listing planned sessions: %v", err)
	}
	return sessions
}

func totalHours(sessions []*domain.Session) float64 {
	var h float64
	for _, s := range sessions {
		h += s.Hours()
	}
	return h
}

func reasonsOf(resp *app.ScheduleResponse) map[string]scheduler.Reason {
	out := make(map[string]scheduler.Reason)
	for _, inf := range resp.Infeasible {
		out[inf.WorkItemID] = inf.Reason
	}
	return out
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
