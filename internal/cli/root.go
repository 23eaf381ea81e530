package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	WorkItems service.WorkItemService
	Events    service.EventService
	Schedule  service.ScheduleService
	Import    service.ImportService

	// Location is the zone flag values are read in and output is shown in.
	Location *time.Location
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Commands only fall
	// back to forms when it returns true.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "studyplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "Deadline-driven study session planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkCmd(app),
		newEventCmd(app),
		newScheduleCmd(app),
		newPlanCmd(app),
		newImportCmd(app),
		newWatchCmd(app),
	)

	return root
}
