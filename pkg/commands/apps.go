package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/commands/options"
	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/printers"
)

var errNoApp = errors.New("no app given")

func addApps(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "list every app in the marketplace and whether it is installed",
		Example: `
phoneshell apps
phoneshell apps -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				return pp.Apps(svc.Marketplace())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addInstall(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "install [app]",
		Short: "install an app from the marketplace onto the last page",
		Example: `
phoneshell install weather
phoneshell install -i
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: appIDCompletions(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				id, err := pickApp(cmd, svc, args, i, false)
				if err != nil {
					return err
				}
				if err := svc.Install(id); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}

func addUninstall(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "uninstall [app]",
		Aliases: []string{"rm"},
		Short:   "remove an app from the phone and the dock",
		Example: `
phoneshell uninstall music
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: appIDCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				id, err := pickApp(cmd, svc, args, i, true)
				if err != nil {
					return err
				}
				if err := svc.Uninstall(id); err != nil {
					return err
				}
				return pp.Layout(svc.Layout(), svc.Entries())
			})
		},
	}

	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}

func addOpen(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "open <app>",
		Short: "open an installed app",
		Long: `Open an installed app. Opening phone marks missed calls as seen, which
clears the phone badge.`,
		Example: `
phoneshell open phone
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appIDCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if _, err := svc.Open(args[0]); err != nil {
					return err
				}
				e, _ := svc.Home.Registry.Get(args[0])
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", i18n.Translate(e.NameKey, svc.Locale()))
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

// pickApp returns the app named on the command line, or asks for one when
// running interactively.
func pickApp(cmd *cobra.Command, svc *app.Service, args []string, i *options.InteractiveOptions, installed bool) (string, error) {
	if len(args) == 1 && !i.Interactive {
		return args[0], nil
	}
	if !i.Interactive && !isTerminal(cmd.InOrStdin()) {
		return "", errNoApp
	}

	var candidates []app.Listing
	for _, l := range svc.Marketplace() {
		if l.Installed != installed {
			continue
		}
		if installed && !l.Removable {
			continue
		}
		candidates = append(candidates, l)
	}
	if len(candidates) == 0 {
		return "", errNoApp
	}

	locale := svc.Locale()
	type row struct {
		ID, Name, Glyph string
	}
	rows := make([]row, 0, len(candidates))
	for _, l := range candidates {
		rows = append(rows, row{ID: l.ID, Name: i18n.Translate(l.NameKey, locale), Glyph: l.Glyph})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Glyph }} {{ .Name | cyan }} ({{ .ID }})",
		Inactive: "   {{ .Glyph }} {{ .Name | cyan }} ({{ .ID }})",
		Selected: "➜  {{ .Name | green }}",
	}

	searcher := func(input string, index int) bool {
		r := rows[index]
		name := strings.ReplaceAll(strings.ToLower(r.Name+r.ID), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "App",
		Items:     rows,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.OutOrStdout()},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return rows[idx].ID, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
