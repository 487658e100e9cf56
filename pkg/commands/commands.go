package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/planner/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: base.Wrap80("A daily planner that carries unfinished work into tomorrow."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addCheck(topLevel)
	addMove(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addFolder(topLevel)
	addCollapse(topLevel)
	addClear(topLevel)
	addSmoke(topLevel)
	addTemplate(topLevel)
	addReconcile(topLevel)
	addTick(topLevel)
	addEndDay(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addShell(topLevel)
	addWatch(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
