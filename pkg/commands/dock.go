package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addDock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "dock",
		Short: "pin, unpin and reorder the four dock slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	var addBefore string
	add := &cobra.Command{
		Use:   "add <app>",
		Short: "pin an app to the dock",
		Example: `
phoneshell dock add music --before phone
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appIDCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.DockAdd(args[0], addBefore); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}
	add.Flags().StringVar(&addBefore, "before", "", "docked app to insert before")

	remove := &cobra.Command{
		Use:               "remove <app>",
		Aliases:           []string{"rm"},
		Short:             "unpin an app; it goes back to the end of the pages",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appIDCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.DockRemove(args[0]); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	var moveBefore string
	move := &cobra.Command{
		Use:               "move <app>",
		Short:             "reorder a docked app",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appIDCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.DockMove(args[0], moveBefore); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}
	move.Flags().StringVar(&moveBefore, "before", "", "docked app to move in front of; empty moves to the end")

	cmd.AddCommand(add, remove, move)
	topLevel.AddCommand(cmd)
}
