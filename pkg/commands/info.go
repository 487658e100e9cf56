package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/runner/info"
	"tableflip.dev/planner/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where records are stored.",
		Example: `
planner info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, cfg store.Config) error {
				s := info.Info{
					Config:  cfg,
					Service: svc,
				}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
