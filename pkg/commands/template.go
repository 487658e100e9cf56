package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/template"
	"tableflip.dev/planner/pkg/store"
)

func addTemplate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Save, apply and delete checklist templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(templateSave(), templateApply(), templateList(), templateDelete())
	topLevel.AddCommand(cmd)
}

func templateSave() *cobra.Command {
	do := &options.DayOptions{}
	cmd := &cobra.Command{
		Use:   "save <list> <name>",
		Short: "Save the items of a list as a template",
		Example: `
planner template save shopping weekly
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a list and a template name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := template.Save{Service: svc, Offset: do.Offset(), List: args[0], Name: args[1]}
				return s.Do(context.Background())
			})
		},
	}
	options.AddDayArgs(cmd, do)
	return cmd
}

func templateApply() *cobra.Command {
	do := &options.DayOptions{}
	preserve := false
	cmd := &cobra.Command{
		Use:   "apply <list> <name>",
		Short: "Add a template's items to a list",
		Example: `
planner template apply shopping weekly
planner template apply --tomorrow morning routine --preserve-done
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a list and a template name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := template.Apply{
					Service:      svc,
					Offset:       do.Offset(),
					List:         args[0],
					Name:         args[1],
					PreserveDone: preserve,
				}
				return s.Do(context.Background())
			})
		},
	}
	options.AddDayArgs(cmd, do)
	cmd.Flags().BoolVar(&preserve, "preserve-done", false, "Keep the done state stored in the template.")
	return cmd
}

func templateList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := template.List{Service: svc}
				return s.Do(context.Background())
			})
		},
	}
}

func templateDelete() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved template",
		Example: `
planner template delete weekly
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(svc *app.Service, _ store.Config) error {
				s := template.Delete{Service: svc, Name: args[0]}
				return s.Do(context.Background())
			})
		},
	}
}
