package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"ev"},
		Short:   "Manage fixed calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var (
		title      string
		start, end time.Time
		length     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event that sessions must avoid",
		RunE: func(cmd *cobra.Command, args []string) error {
			if missing := missingFlags(cmd, "title", "start"); len(missing) > 0 {
				return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
			}
			flags := cmd.Flags()
			switch {
			case flags.Changed("end") && flags.Changed("duration"):
				return fmt.Errorf("pass either --end or --duration, not both")
			case flags.Changed("duration"):
				if length <= 0 {
					return fmt.Errorf("--duration must be positive")
				}
				end = start.Add(length)
			case !flags.Changed("end"):
				return fmt.Errorf("missing required flags: --end or --duration")
			}

			e := &domain.Event{Title: strings.TrimSpace(title), Start: start, End: end}
			resp, err := app.Events.Create(cmd.Context(), e)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added event %s %s (%s)\n", formatter.Bold(e.Title),
				formatter.Dim(formatter.DateTime(e.Start.In(app.loc()))+" to "+formatter.DateTime(e.End.In(app.loc()))), e.ID)
			printReschedule(out, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().Var(newTimeValue(&start, app.loc(), false), "start", "Start (YYYY-MM-DD HH:MM)")
	cmd.Flags().Var(newTimeValue(&end, app.loc(), false), "end", "End (YYYY-MM-DD HH:MM)")
	cmd.Flags().DurationVar(&length, "duration", 0, "Length instead of --end (e.g. 90m)")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var from, to time.Time
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				events []*domain.Event
				err    error
			)
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				if to.IsZero() {
					to = from.AddDate(1, 0, 0)
				}
				if !to.After(from) {
					return fmt.Errorf("--to must be after --from")
				}
				events, err = app.Events.ListBetween(ctx, from, to)
			} else {
				events, err = app.Events.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events, app.loc()))
			return nil
		},
	}
	cmd.Flags().Var(newTimeValue(&from, app.loc(), false), "from", "Only events ending after this time")
	cmd.Flags().Var(newTimeValue(&to, app.loc(), true), "to", "Only events starting before this time")
	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an event and reschedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Events.Delete(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed event %s\n", id)
			printReschedule(out, resp)
			return nil
		},
	}
}
