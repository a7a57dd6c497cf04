package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/printers"
)

// withService opens the configured store, builds the app service and hands
// both it and a printer in the chosen format to fn.
func withService(cmd *cobra.Command, fn func(svc *app.Service, pp *printers.PrettyPrint) error) error {
	log, closeLog, err := so.Logger(cmd.ErrOrStderr(), false)
	if err != nil {
		return oo.HandleError(err)
	}
	defer closeLog()

	p, cfg, err := so.Open(log)
	if err != nil {
		return oo.HandleError(err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn("closing store", "err", err)
		}
	}()

	svc, err := app.New(p, app.Options{Logger: log, Locale: cfg.Locale()})
	if err != nil {
		return oo.HandleError(err)
	}
	return oo.HandleError(fn(svc, oo.Printer(cmd, svc.Locale())))
}

func appIDCompletions(installed bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var ids []string
		_ = withService(cmd, func(svc *app.Service, _ *printers.PrettyPrint) error {
			for _, l := range svc.Marketplace() {
				if l.Installed == installed {
					ids = append(ids, l.ID)
				}
			}
			return nil
		})
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
