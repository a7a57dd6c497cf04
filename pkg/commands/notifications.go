package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addNotifications(topLevel *cobra.Command) {
	var (
		clear  bool
		missed bool
		read   string
	)

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notifs"},
		Short:   "list missed calls and unread messages",
		Example: `
phoneshell notifications
phoneshell notifications --clear
phoneshell notifications --read 555-0101
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				var err error
				switch {
				case clear:
					err = svc.ClearNotifications()
				case missed:
					err = svc.ClearMissedCalls()
				case read != "":
					err = svc.MarkConversationRead(read)
				}
				if err != nil {
					return err
				}
				return pp.Notifications(svc.Notifications())
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "mark everything seen and read")
	cmd.Flags().BoolVar(&missed, "missed", false, "mark missed calls seen")
	cmd.Flags().StringVar(&read, "read", "", "mark the thread with this phone number read")
	cmd.MarkFlagsMutuallyExclusive("clear", "missed", "read")

	topLevel.AddCommand(cmd)
}
