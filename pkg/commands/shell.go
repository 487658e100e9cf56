package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/runner/shell"
	"tableflip.dev/planner/pkg/runner/watch"
	"tableflip.dev/planner/pkg/store"
)

func addShell(topLevel *cobra.Command) {
	list := ""

	cmd := &cobra.Command{
		Use:     "shell",
		Aliases: []string{"repl"},
		Short:   "Edit the day interactively",
		Long: `Shell opens a prompt on today's record. Lines are added to the current
list; :help lists the colon commands. Writes are batched and saved after a
quiet period and on exit.`,
		Example: `
planner shell
planner shell --list shopping
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, cfg store.Config) error {
				history := ""
				if home, err := homedir.Dir(); err == nil {
					history = filepath.Join(home, ".planner_history")
				}
				s := shell.Shell{
					Service: svc,
					Quiet:   cfg.Debounce(),
					History: history,
					List:    list,
				}
				return s.Do(context.Background())
			})
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", "", "List to start on.")
	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	list := ""

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the store, reprinting the day and cascading time blocks",
		Example: `
planner watch
planner watch --list morning
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return run(func(svc *app.Service, cfg store.Config) error {
				s := watch.Watch{
					Service: svc,
					Quiet:   cfg.Debounce(),
					Tick:    cfg.Tick(),
					List:    list,
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", "", "Only print this list.")
	topLevel.AddCommand(cmd)
}
