package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addLayout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "layout",
		Aliases: []string{"ls"},
		Short:   "print the home screen page by page",
		Example: `
phoneshell layout
phoneshell layout -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
