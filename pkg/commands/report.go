package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/runner/report"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	r := report.Report{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display finished items grouped by day",
		Long: `Report lists done and cleared items for each day in the window. The window
ends at the current day unless --until is given.

Examples:
  planner report
  planner report --last 3d
  planner report --since 2025-10-01 --until 2025-10-11
  planner report --calendar --last 1mo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				r.Service = svc
				return r.Do(context.Background())
			})
		},
	}

	cmd.Flags().StringVar(&r.Last, "last", timeutil.DefaultWindow, "Window to include, for example 3d or 1w2d.")
	cmd.Flags().StringVar(&r.Since, "since", "", "First day to include (YYYY-MM-DD); overrides --last.")
	cmd.Flags().StringVar(&r.Until, "until", "", "Last day to include (YYYY-MM-DD).")
	cmd.Flags().BoolVar(&r.Calendar, "calendar", false, "Show a month calendar of finished counts.")
	topLevel.AddCommand(cmd)
}
