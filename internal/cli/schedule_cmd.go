package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(a *App) *cobra.Command {
	var at time.Time
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Rebuild the session plan from the current work items and events",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewScheduleRequest(domain.TriggerManual)
			if cmd.Flags().Changed("now") {
				req.Now = &at
			}
			resp, err := a.Schedule.Reschedule(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(resp, a.loc()))
			return nil
		},
	}
	cmd.Flags().Var(newTimeValue(&at, a.loc(), false), "now", "Plan as if it were this time")
	return cmd
}

func newPlanCmd(a *App) *cobra.Command {
	var (
		days int
		from time.Time
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show planned sessions day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			ctx := cmd.Context()
			loc := a.loc()

			start := from
			if !cmd.Flags().Changed("from") {
				start = a.now()
			}
			start = startOfDay(start.In(loc))
			end := start.AddDate(0, 0, days)

			sessions, err := a.Schedule.Planned(ctx, start, end)
			if err != nil {
				return err
			}
			titles, err := titlesByID(ctx, a)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(sessions, titles, start, end, loc))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")
	cmd.Flags().Var(newTimeValue(&from, a.loc(), false), "from", "First day to show (default today)")
	return cmd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
