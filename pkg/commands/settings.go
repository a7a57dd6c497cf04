package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/printers"
	"tableflip.dev/phoneshell/pkg/settings"
)

func addSettings(topLevel *cobra.Command) {
	var (
		theme    string
		airplane bool
		locale   string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "show or change the theme, airplane mode and display language",
		Example: `
phoneshell settings
phoneshell settings --theme light --airplane
phoneshell settings --lang fr
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("theme") {
				if t := settings.Theme(theme); t != settings.Dark && t != settings.Light {
					return oo.HandleError(fmt.Errorf("unknown theme %q (expected dark or light)", theme))
				}
			}
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				s := svc.Settings()
				if flags.Changed("theme") || flags.Changed("airplane") || flags.Changed("lang") {
					next, err := svc.UpdateSettings(func(s settings.Settings) settings.Settings {
						if flags.Changed("theme") {
							s.Theme = settings.Theme(theme)
						}
						if flags.Changed("airplane") {
							s.AirplaneMode = airplane
						}
						if flags.Changed("lang") {
							s.Locale = i18n.Normalize(locale)
						}
						return s
					})
					if err != nil {
						return err
					}
					s = next
					pp.Locale = s.Locale
				}
				return pp.Settings(s)
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "dark or light")
	cmd.Flags().BoolVar(&airplane, "airplane", false, "turn airplane mode on or off")
	cmd.Flags().StringVar(&locale, "lang", "", fmt.Sprintf("display language, one of %v", i18n.Supported()))

	topLevel.AddCommand(cmd)
}
