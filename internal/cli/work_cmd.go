package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "work",
		Aliases: []string{"w"},
		Short:   "Manage work items",
	}

	cmd.AddCommand(
		newWorkAddCmd(app),
		newWorkListCmd(app),
		newWorkShowCmd(app),
		newWorkUpdateCmd(app),
		newWorkLogCmd(app),
		newWorkRemoveCmd(app),
	)

	return cmd
}

func newWorkAddCmd(app *App) *cobra.Command {
	var (
		title, strictness string
		deadline          time.Time
		hours, completed  hoursValue
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work item and reschedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var w *domain.WorkItem
			missing := missingFlags(cmd, "title", "deadline", "hours")
			if len(missing) > 0 {
				if !app.interactive() {
					return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
				}
				in := &workItemInput{Title: title, Strictness: strings.ToLower(strictness)}
				if !deadline.IsZero() {
					in.Deadline = deadline.In(app.loc()).Format("2006-01-02 15:04")
				}
				if hours > 0 {
					in.Hours = hours.String()
				}
				if err := newWorkItemForm(in, app.loc()).RunWithContext(cmd.Context()); err != nil {
					return err
				}
				var err error
				if w, err = in.toWorkItem(app.loc()); err != nil {
					return err
				}
			} else {
				strict, ok := domain.ParseStrictness(strings.ToLower(strictness))
				if !ok {
					return fmt.Errorf("--strictness must be %q or %q", domain.StrictnessStrict, domain.StrictnessFlexible)
				}
				w = &domain.WorkItem{
					Title:         title,
					Deadline:      deadline,
					Strict:        strict,
					RequiredHours: float64(hours),
				}
			}
			w.CompletedHours = float64(completed)

			resp, err := app.WorkItems.Create(cmd.Context(), w)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created work item %s (%s)\n", formatter.Bold(w.Title), w.ID)
			printReschedule(out, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Work item title")
	cmd.Flags().Var(newTimeValue(&deadline, app.loc(), true), "deadline", "Deadline (YYYY-MM-DD means end of day)")
	cmd.Flags().Var(&hours, "hours", "Required hours (2.5 or 2h30m)")
	cmd.Flags().Var(&completed, "completed", "Hours already completed")
	cmd.Flags().StringVar(&strictness, "strictness", domain.StrictnessFlexible, "strict or flexible")

	return cmd
}

func newWorkListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List work items by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			items, err := app.WorkItems.List(ctx, all)
			if err != nil {
				return err
			}
			scheduled := make(map[string]float64, len(items))
			for _, w := range items {
				sessions, err := app.WorkItems.ListSessions(ctx, w.ID)
				if err != nil {
					return err
				}
				for _, s := range sessions {
					scheduled[w.ID] += s.Hours()
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkItemList(items, scheduled, app.now(), app.loc()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include completed items")
	return cmd
}

func newWorkShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a work item with its sessions and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkItems.GetByID(ctx, id)
			if err != nil {
				return err
			}
			sessions, err := app.WorkItems.ListSessions(ctx, id)
			if err != nil {
				return err
			}
			logs, err := app.WorkItems.ListProgress(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkItemDetail(w, sessions, logs, app.now(), app.loc()))
			return nil
		},
	}
}

func newWorkUpdateCmd(app *App) *cobra.Command {
	var (
		title, strictness string
		deadline          time.Time
		hours             hoursValue
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a work item and reschedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkItems.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("deadline") && !flags.Changed("hours") && !flags.Changed("strictness") {
				return fmt.Errorf("nothing to update: pass --title, --deadline, --hours or --strictness")
			}
			if flags.Changed("title") {
				w.Title = strings.TrimSpace(title)
				if w.Title == "" {
					return fmt.Errorf("work item title is required")
				}
			}
			if flags.Changed("deadline") {
				w.Deadline = deadline
			}
			if flags.Changed("hours") {
				w.RequiredHours = float64(hours)
			}
			if flags.Changed("strictness") {
				strict, ok := domain.ParseStrictness(strings.ToLower(strictness))
				if !ok {
					return fmt.Errorf("--strictness must be %q or %q", domain.StrictnessStrict, domain.StrictnessFlexible)
				}
				w.Strict = strict
			}

			resp, err := app.WorkItems.Update(ctx, w)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated work item %s\n", formatter.Bold(w.Title))
			printReschedule(out, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().Var(newTimeValue(&deadline, app.loc(), true), "deadline", "New deadline")
	cmd.Flags().Var(&hours, "hours", "New required hours")
	cmd.Flags().StringVar(&strictness, "strictness", "", "strict or flexible")

	return cmd
}

func newWorkLogCmd(app *App) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "log ID HOURS",
		Short: "Record completed hours and reschedule the remainder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			hours, err := parseHours(args[1])
			if err != nil {
				return err
			}
			w, err := app.WorkItems.GetByID(ctx, id)
			if err != nil {
				return err
			}

			l := &domain.ProgressLog{WorkItemID: id, Hours: hours, Note: strings.TrimSpace(note)}
			resp, err := app.WorkItems.LogProgress(ctx, l)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged %s on %s\n", formatter.FormatHours(l.Hours), formatter.Bold(w.Title))
			if l.Hours < hours {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Only %s was still required; the item is complete.", formatter.FormatHours(l.Hours))))
			}
			printReschedule(out, resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	return cmd
}

func newWorkRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a work item with its sessions and progress",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.WorkItems.Delete(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed work item %s\n", id)
			printReschedule(out, resp)
			return nil
		},
	}
}

// missingFlags returns the "--name" of every listed flag that was not set.
func missingFlags(cmd *cobra.Command, names ...string) []string {
	var missing []string
	for _, n := range names {
		if !cmd.Flags().Changed(n) {
			missing = append(missing, "--"+n)
		}
	}
	return missing
}

// printReschedule summarizes the reschedule a mutation triggered.
func printReschedule(w io.Writer, resp *app.ScheduleResponse) {
	if resp == nil {
		return
	}
	total := 0.0
	for _, s := range resp.Sessions {
		total += s.Hours()
	}
	fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Rescheduled: %d sessions, %s planned, %d infeasible",
		len(resp.Sessions), formatter.FormatHours(total), len(resp.Infeasible))))
	if len(resp.Infeasible) > 0 {
		fmt.Fprint(w, formatter.FormatInfeasible(resp.Infeasible, resp.Titles))
	}
}
