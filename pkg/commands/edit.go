package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/edit"
	"tableflip.dev/planner/pkg/runner/strike"
	"tableflip.dev/planner/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "edit <list> <n> <text...>",
		Short: "Replace the text of an item",
		Example: `
planner edit work 2 Email Bob about the offsite
planner edit notes 0 Call mom on Sunday
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errors.New("requires a list, an item index and text")
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
				s := edit.Edit{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Index:   index,
					Text:    strings.Join(args[2:], " "),
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "move <list> <n> <folder>",
		Aliases: []string{"mv"},
		Short:   "File an item under another folder",
		Example: `
planner move work 0 inbox
planner move work 3 unfiled
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errors.New("requires a list, an item index and a folder")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			index, err := options.ParseIndex(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			folder := strings.Join(args[2:], " ")
			return run(func(svc *app.Service, _ store.Config) error {
				s := edit.Edit{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Index:   index,
					Folder:  &folder,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "rm <list> <n>",
		Aliases: []string{"remove", "strike"},
		Short:   "Remove an item",
		Example: `
planner rm work 4
planner rm notes 1
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
				s := strike.Strike{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Index:   index,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "clear <list>",
		Short: "Archive the done items of a list",
		Example: `
planner clear shopping
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := strike.Clear{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
