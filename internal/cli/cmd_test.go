package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB with the clock pinned
// to testutil.Reference (Monday 3 March 2025, 09:00 UTC).
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	policy := scheduler.DefaultPolicy()
	policy.Location = time.UTC

	sessions := repository.NewSQLitePlannedSessionRepo(database)
	schedule := service.WithClock(
		service.NewScheduleService(sessions, testutil.NewTestUoW(database), scheduler.New(policy)),
		func() time.Time { return testutil.Reference },
	)

	return &App{
		WorkItems: service.NewWorkItemService(
			repository.NewSQLiteWorkItemRepo(database),
			repository.NewSQLiteProgressRepo(database),
			sessions,
			schedule,
		),
		Events:        service.NewEventService(repository.NewSQLiteEventRepo(database), schedule),
		Schedule:      schedule,
		Import:        service.NewImportService(schedule),
		Location:      time.UTC,
		IsInteractive: func() bool { return false },
		Now:           func() time.Time { return testutil.Reference },
	}
}

// seedWorkItem stores a 4h flexible item due a week after Reference.
func seedWorkItem(t *testing.T, app *App, id, title string, opts ...testutil.WorkItemOption) *domain.WorkItem {
	t.Helper()
	w := testutil.NewTestWorkItem(title, append([]testutil.WorkItemOption{testutil.WithWorkItemID(id)}, opts...)...)
	_, err := app.WorkItems.Create(context.Background(), w)
	require.NoError(t, err)
	return w
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- work ---

func TestWorkAdd_RequiresFlagsWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "work", "add", "--title", "Essay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: --deadline, --hours")
}

func TestWorkAdd_CreatesAndReschedules(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "work", "add",
		"--title", "Essay", "--deadline", "2025-03-07", "--hours", "4", "--strictness", "Strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Created work item")
	assert.Contains(t, out, "4h planned, 0 infeasible")

	items, err := app.WorkItems.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Strict)
	assert.Equal(t, time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC), items[0].Deadline)
}

func TestWorkAdd_RejectsBadValues(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "work", "add", "--title", "Essay", "--deadline", "next week", "--hours", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")

	_, err = executeCmd(t, app, "work", "add", "--title", "Essay", "--deadline", "2025-03-07", "--hours", "-1")
	require.Error(t, err)

	_, err = executeCmd(t, app, "work", "add", "--title", "Essay", "--deadline", "2025-03-07", "--hours", "4", "--strictness", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--strictness")
}

func TestWorkAdd_DeadlineInPastIsInfeasible(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "work", "add",
		"--title", "Late", "--deadline", "2025-03-01 10:00", "--hours", "2", "--strictness", "strict")
	require.NoError(t, err)
	assert.Contains(t, out, "1 infeasible")
	assert.Contains(t, out, "DEADLINE_PASSED")
}

func TestWorkList(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")
	seedWorkItem(t, app, "lab-1", "Lab report", testutil.WithHours(2, 2))

	out, err := executeCmd(t, app, "work", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Essay")
	assert.NotContains(t, out, "Lab report")

	out, err = executeCmd(t, app, "work", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Lab report")
}

func TestWorkShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "work", "show", "ess")
	require.NoError(t, err)
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "essay-1")
	assert.Contains(t, out, "SESSIONS")
}

func TestWorkShow_Unknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "work", "show", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no work item matches "nope"`)
}

func TestWorkLog(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "work", "log", "essay-1", "90m", "--note", "outline")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 1h 30m on")
	assert.Contains(t, out, "2h 30m planned")

	logs, err := app.WorkItems.ListProgress(context.Background(), "essay-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "outline", logs[0].Note)
}

func TestWorkLog_ClampsToRemaining(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay", testutil.WithHours(4, 3))

	out, err := executeCmd(t, app, "work", "log", "essay-1", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 1h on")
	assert.Contains(t, out, "the item is complete")
	assert.Contains(t, out, "0 sessions")
}

func TestWorkUpdate(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "work", "update", "essay-1", "--hours", "6", "--title", "Long essay")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated work item")
	assert.Contains(t, out, "6h planned")

	w, err := app.WorkItems.GetByID(context.Background(), "essay-1")
	require.NoError(t, err)
	assert.Equal(t, "Long essay", w.Title)
	assert.Equal(t, 6.0, w.RequiredHours)
}

func TestWorkUpdate_NothingToUpdate(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	_, err := executeCmd(t, app, "work", "update", "essay-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestWorkRemove(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "work", "rm", "essay-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed work item essay-1")
	assert.Contains(t, out, "Rescheduled: 0 sessions")
}

// --- event ---

func TestEventAdd_WithDuration(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "event", "add", "--title", "Dentist", "--start", "2025-03-03 13:00", "--duration", "90m")
	require.NoError(t, err)
	assert.Contains(t, out, "Added event")
	assert.Contains(t, out, "Mar 3 13:00 to Mar 3 14:30")

	out, err = executeCmd(t, app, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dentist")
	assert.Contains(t, out, "1h 30m")
}

func TestEventAdd_Validation(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "event", "add", "--title", "X", "--start", "2025-03-03 13:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--end or --duration")

	_, err = executeCmd(t, app, "event", "add", "--title", "X", "--start", "2025-03-03 13:00",
		"--end", "2025-03-03 14:00", "--duration", "1h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")

	_, err = executeCmd(t, app, "event", "add", "--title", "X", "--start", "2025-03-03 13:00", "--end", "2025-03-03 12:00")
	require.Error(t, err)
}

func TestEventList_Between(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_, err := app.Events.Create(ctx, testutil.NewTestEvent("Monday", testutil.Reference.Add(4*time.Hour), testutil.Reference.Add(5*time.Hour)))
	require.NoError(t, err)
	_, err = app.Events.Create(ctx, testutil.NewTestEvent("Friday", testutil.Reference.AddDate(0, 0, 4), testutil.Reference.AddDate(0, 0, 4).Add(time.Hour)))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "event", "list", "--from", "2025-03-03", "--to", "2025-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday")
	assert.NotContains(t, out, "Friday")
}

func TestEventRemove(t *testing.T) {
	app := testApp(t)
	e := testutil.NewTestEvent("Dentist", testutil.Reference.Add(4*time.Hour), testutil.Reference.Add(5*time.Hour))
	_, err := app.Events.Create(context.Background(), e)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "event", "remove", e.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Removed event "+e.ID)

	events, err := app.Events.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

// --- schedule / plan ---

func TestScheduleCmd(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHEDULE")
	assert.Contains(t, out, "trigger MANUAL")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "4h planned, 0 infeasible")
}

func TestPlanCmd(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")

	out, err := executeCmd(t, app, "plan", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN")
	assert.Contains(t, out, "Mon Mar 3 to Wed Mar 5")
	assert.Contains(t, out, "Essay")

	_, err = executeCmd(t, app, "plan", "--days", "0")
	require.Error(t, err)
}

// --- import ---

const snapshotJSON = `{
  "work_items": [
    {"id": "thesis", "title": "Thesis chapter", "deadline": "2025-03-14T18:00:00Z", "strictness": "strict", "required_hours": 6}
  ],
  "events": [
    {"id": "ev-1", "title": "Seminar", "start": "2025-03-04T12:00:00Z", "end": "2025-03-04T14:00:00Z"}
  ]
}`

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	seedWorkItem(t, app, "essay-1", "Essay")
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 work items and 1 events")
	assert.Contains(t, out, "trigger IMPORT")
	assert.Contains(t, out, "Thesis chapter")

	items, err := app.WorkItems.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "thesis", items[0].ID)
}

func TestImportCmd_Invalid(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"work_items":[{"title":"","deadline":"soon","required_hours":0}]}`), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
}

func TestWatchCmd_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "watch", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
