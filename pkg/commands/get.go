package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/get"
	"tableflip.dev/planner/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	showIndex := true
	width := 0

	cmd := &cobra.Command{
		Use:     "get [list]",
		Aliases: []string{"ls", "show"},
		Short:   "Print the day or one list, grouped by folder",
		Example: `
planner get
planner get work
planner get notes
planner get --tomorrow --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := get.Get{
					Service:   svc,
					Offset:    do.Offset(),
					ShowIndex: showIndex,
					JSON:      oo.JSON,
					Width:     width,
				}
				if len(args) == 1 {
					s.List = args[0]
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	cmd.Flags().BoolVarP(&showIndex, "index", "i", true, "Show item indexes.")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap item text at this width.")
	topLevel.AddCommand(cmd)
}
