package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/runner/endday"
	"tableflip.dev/planner/pkg/runner/tick"
	"tableflip.dev/planner/pkg/store"
)

func addReconcile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Carry today's unfinished items into tomorrow",
		Example: `
planner reconcile
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := tick.Reconcile{Service: svc}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTick(topLevel *cobra.Command) {
	hour := -1

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Move unfinished items out of elapsed time blocks",
		Example: `
planner tick
planner tick --hour 18
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := tick.Tick{Service: svc, Hour: hour}
				return s.Do(context.Background())
			})
		},
	}

	cmd.Flags().IntVar(&hour, "hour", -1, "Cascade as if it were this hour (0-24).")
	topLevel.AddCommand(cmd)
}

func addEndDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "endday",
		Aliases: []string{"end-day", "rollover"},
		Short:   "Close today and make tomorrow the current day",
		Long: `End day reconciles today into tomorrow, merges any unfinished items that
are still missing, archives today when an archive directory is configured and
moves the anchor forward one day.`,
		Example: `
planner endday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := endday.EndDay{Service: svc}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
