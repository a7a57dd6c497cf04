package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/tui/shell"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the home screen in the terminal",
		Long: `Open the interactive home screen. Hold the mouse on an icon, or press e,
to start editing. Drag icons between pages and the dock, then press Done or
Home. Set PHONESHELL_LOG to a file path to capture logs.`,
		Example: `
phoneshell ui
phoneshell ui --ephemeral
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs an interactive terminal")
			}
			log, closeLog, err := so.Logger(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer closeLog()

			p, cfg, err := so.Open(log)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close() }()

			return shell.Run(cmd.Context(), p, shell.Options{Logger: log, Locale: cfg.Locale()})
		},
	}

	topLevel.AddCommand(cmd)
}
