package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all work items and events with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printImport(cmd.OutOrStdout(), res, a)
			return nil
		},
	}
}

func newWatchCmd(a *App) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Import a snapshot and re-import it whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher, err := newSnapshotWatcher(path, debounce, a.logger())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Watching %s (Ctrl+C to stop)", path)))
			return watcher.Run(ctx, func(ctx context.Context) error {
				res, err := a.Import.ImportFile(ctx, path)
				if err != nil {
					fmt.Fprintln(out, formatter.StyleRed.Render("Import failed: "+err.Error()))
					return err
				}
				printImport(out, res, a)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "Quiet period before re-importing")
	return cmd
}

func printImport(w io.Writer, res *app.ImportResult, a *App) {
	fmt.Fprintf(w, "Imported %d work items and %d events\n", res.WorkItemCount, res.EventCount)
	if res.Schedule != nil {
		fmt.Fprint(w, formatter.FormatSchedule(res.Schedule, a.loc()))
	}
}
