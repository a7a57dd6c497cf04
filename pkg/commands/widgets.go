package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addWidgets(topLevel *cobra.Command) {
	kinds := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return layout.WidgetKinds(), cobra.ShellCompDirectiveNoFileComp
	}

	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "show or change the widgets on the first screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	add := &cobra.Command{
		Use:               "add <kind>",
		Short:             fmt.Sprintf("add a widget (%v)", layout.WidgetKinds()),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.AddWidget(args[0]); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	remove := &cobra.Command{
		Use:               "remove <kind>",
		Aliases:           []string{"rm"},
		Short:             "remove a widget",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.RemoveWidget(args[0]); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	cmd.AddCommand(add, remove)
	topLevel.AddCommand(cmd)
}
