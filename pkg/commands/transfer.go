package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/transfer"
	"tableflip.dev/planner/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	out := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a day as a portable JSON document",
		Example: `
planner export
planner export --out ~/backups/
planner export --tomorrow --out plan.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := transfer.Export{Service: svc, Offset: do.Offset(), Out: out}
				return s.Do(context.Background())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	cmd.Flags().StringVarP(&out, "out", "o", "", "File or directory to write; stdout when empty.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a day from an exported document",
		Example: `
planner import 2025-10-11-planner.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := transfer.Import{Service: svc, Path: args[0]}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
