package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/phoneshell/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	so = &options.StoreOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "phoneshell",
		Short: base.Wrap80("A phone home screen in your terminal: pages of apps, a dock, widgets and notifications."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddOutputArg(cmd, oo)
	options.AddStoreArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLayout(topLevel)
	addApps(topLevel)
	addInstall(topLevel)
	addUninstall(topLevel)
	addOpen(topLevel)
	addMove(topLevel)
	addDock(topLevel)
	addWidgets(topLevel)
	addNotifications(topLevel)
	addSettings(topLevel)
	addSeed(topLevel)
	addDoctor(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
