package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/complete"
	"tableflip.dev/planner/pkg/store"
)

func addCheck(topLevel *cobra.Command) {
	topLevel.AddCommand(checkCommand("check", []string{"done", "x"}, "Mark an item done", true))
	topLevel.AddCommand(checkCommand("uncheck", []string{"undo", "o"}, "Mark an item open again", false))
}

func checkCommand(use string, aliases []string, short string, done bool) *cobra.Command {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     use + " <list> <n>",
		Aliases: aliases,
		Short:   short,
		Example: `
planner ` + use + ` work 0
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a list and an item index")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			index, err := options.ParseIndex(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(svc *app.Service, _ store.Config) error {
				s := complete.Complete{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Index:   index,
					Done:    done,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	return cmd
}
