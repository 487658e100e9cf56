package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/folder"
	"tableflip.dev/planner/pkg/runner/smoke"
	"tableflip.dev/planner/pkg/store"
)

func addFolder(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage the folders of a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	do := &options.DayOptions{}
	del := &cobra.Command{
		Use:   "delete <list> <folder>",
		Short: "Delete a folder and everything in it",
		Example: `
planner folder delete work inbox
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a list and a folder")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := folder.Delete{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					Folder:  strings.Join(args[1:], " "),
				}
				return s.Do(context.Background())
			})
		},
	}
	options.AddDayArgs(del, do)

	cmd.AddCommand(del)
	topLevel.AddCommand(cmd)
}

func addCollapse(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "collapse <block> on|off",
		Short: "Collapse or expand a time block",
		Example: `
planner collapse morning on
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			on, err := options.ParseSwitch(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(svc *app.Service, _ store.Config) error {
				s := folder.Collapse{
					Service: svc,
					Offset:  do.Offset(),
					Block:   args[0],
					On:      on,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addSmoke(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "smoke <list> on|off",
		Short: "Set or clear the smoke flag of a list",
		Example: `
planner smoke work on
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			on, err := options.ParseSwitch(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(svc *app.Service, _ store.Config) error {
				s := smoke.Smoke{
					Service: svc,
					Offset:  do.Offset(),
					List:    args[0],
					On:      on,
				}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
