package cli

import (
	"github.com/spf13/cobra"

	"myspace/internal/cli/formatter"
)

// NewRootCmd creates the top-level "myspace" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:           "myspace",
		Short:         "Time tracking dashboard: today, calendar and projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				app.Format = formatter.New(false)
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newServeCmd(app),
		newDayCmd(app),
		newCalendarCmd(app),
		newProjectsCmd(app),
		newMonthCmd(app),
	)

	return root
}
