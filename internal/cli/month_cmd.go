package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"myspace/internal/core"
	"myspace/internal/view"
)

func newCalendarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show the month calendar with hours per day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.periodArg(args)
			if err != nil {
				return err
			}
			page := app.loadCalendar(cmd.Context(), p)
			fmt.Fprint(cmd.OutOrStdout(), app.Format.FormatCalendar(p, page))
			if page.IsFailed() {
				return ErrPageFailed
			}
			return nil
		},
	}
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects [YYYY-MM]",
		Short: "Show hours and earnings per project for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.periodArg(args)
			if err != nil {
				return err
			}
			page := app.loadProjects(cmd.Context(), p)
			fmt.Fprint(cmd.OutOrStdout(), app.Format.FormatProjects(p, page))
			if page.IsFailed() {
				return ErrPageFailed
			}
			return nil
		},
	}
}

// newMonthCmd fetches the calendar and projects pages concurrently. Each
// page resolves on its own; one failing does not cancel the other.
func newMonthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show the calendar and the projects breakdown of a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.periodArg(args)
			if err != nil {
				return err
			}

			var (
				calendar view.Page[view.CalendarView]
				projects view.Page[view.ProjectsView]
			)
			ctx := cmd.Context()
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				calendar = app.loadCalendar(ctx, p)
			}()
			go func() {
				defer wg.Done()
				projects = app.loadProjects(ctx, p)
			}()
			wg.Wait()

			out := cmd.OutOrStdout()
			fmt.Fprint(out, app.Format.FormatCalendar(p, calendar))
			fmt.Fprintln(out)
			fmt.Fprint(out, app.Format.FormatProjects(p, projects))
			if calendar.IsFailed() || projects.IsFailed() {
				return ErrPageFailed
			}
			return nil
		},
	}
}

// periodArg parses the optional month argument, defaulting to the current
// month in the viewer's time zone.
func (a *App) periodArg(args []string) (core.Period, error) {
	if len(args) == 0 {
		return a.Views.Today().Period(), nil
	}
	return parsePeriodArg(args[0])
}
