package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/add"
	"tableflip.dev/planner/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	bullets := false

	cmd := &cobra.Command{
		Use:   "add <list> <text...>",
		Short: "Add items to a list",
		Long: `Add parses the text into items. Commas, semicolons and newlines separate
items. Trailing #tags file items under folders; tags on the last item apply to
all of them. A line of just -folder deletes that folder.`,
		Example: `
planner add work Email Bob #inbox
planner add shopping milk, eggs, bread #groceries
planner add work -- -inbox
planner add --tomorrow morning Gym
planner add --bullets food Soup, Bread
planner add notes Call mom
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a list and text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := add.Add{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Input:   strings.Join(args[1:], " "),
					Bullets: bullets,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	cmd.Flags().BoolVarP(&bullets, "bullets", "b", false, "Add to a plain bullet list that is never carried forward.")
	topLevel.AddCommand(cmd)
}
