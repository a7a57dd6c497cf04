package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addMove(topLevel *cobra.Command) {
	var before string

	cmd := &cobra.Command{
		Use:   "move <id> <main|dock|widgets>",
		Short: "move an app or widget as if it were dragged and dropped",
		Long: `Move an app or widget into a zone. With --before the item lands in front of
that app or widget, otherwise it goes to the end. Moving into a full dock is
refused.`,
		Example: `
phoneshell move music dock --before phone
phoneshell move camera main
phoneshell move music widgets --before clock
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return []string{string(layout.ZoneMain), string(layout.ZoneDock), string(layout.ZoneWidgets)}, cobra.ShellCompDirectiveNoFileComp
			}
			return appIDCompletions(true)(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				out, err := svc.Move(args[0], args[1], before)
				if err != nil {
					return err
				}
				if !out.Applied {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: nothing to do\n", args[0])
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "id of the app or widget to insert before")
	topLevel.AddCommand(cmd)
}
