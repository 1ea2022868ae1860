package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"myspace/internal/core"
	applog "myspace/internal/log"
	"myspace/internal/view"
)

const clearScreen = "\x1b[H\x1b[2J"

func newDayCmd(app *App) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show today's hours, month progress and pace",
		Long: "Show the day page. Without a date it shows today in the configured time zone.\n" +
			"With --watch the page is fetched again after every reload interval until interrupted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := app.Views.Today
			if len(args) == 1 {
				d, err := parseDateArg(args[0])
				if err != nil {
					return err
				}
				date = func() core.Date { return d }
			}

			out := cmd.OutOrStdout()
			if !watch {
				page := app.loadDay(cmd.Context(), date())
				fmt.Fprint(out, app.Format.FormatDay(date(), page))
				if page.IsFailed() {
					return ErrPageFailed
				}
				return nil
			}

			if interval <= 0 {
				interval = app.reloadInterval()
			}
			return app.watchDay(cmd.Context(), out, date, interval)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the page after every interval until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Reload interval for --watch (default DAY_RELOAD_INTERVAL)")

	return cmd
}

// watchDay renders the day page, then arms a one-shot reload and renders
// again when it fires. The reloader is stopped when ctx ends.
func (a *App) watchDay(ctx context.Context, out io.Writer, date func() core.Date, interval time.Duration) error {
	reload := make(chan struct{}, 1)
	r := view.NewReloader(interval, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	defer r.Stop()

	for {
		d := date()
		fmt.Fprint(out, a.Format.FormatDay(d, a.loadDay(ctx, d)))
		r.Arm()

		select {
		case <-ctx.Done():
			return nil
		case <-reload:
		}

		a.Logger.Debug("Reloading day page", applog.FieldOperation, applog.OpReload, "interval", interval.String())
		if a.Format.Color() {
			fmt.Fprint(out, clearScreen)
		} else {
			fmt.Fprintln(out)
		}
	}
}
