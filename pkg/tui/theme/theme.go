package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/settings"
)

// Theme centralizes Lip Gloss styles for the home screen.
type Theme struct {
	Mode   settings.Theme
	Status StatusTheme
	Icon   IconTheme
	Dock   DockTheme
	Panel  PanelTheme
	Footer FooterTheme
}

// StatusTheme styles the top bar.
type StatusTheme struct {
	Bar      lipgloss.Style
	Airplane lipgloss.Style
	Dot      lipgloss.Style
	DotOn    lipgloss.Style
	Done     lipgloss.Style
}

// IconTheme styles app cells.
type IconTheme struct {
	Label      lipgloss.Style
	Badge      lipgloss.Style
	Remove     lipgloss.Style
	Focus      lipgloss.Style
	Ghost      lipgloss.Style
	Installing lipgloss.Style
}

// DockTheme styles the dock shelf.
type DockTheme struct {
	Rule lipgloss.Style
}

// PanelTheme styles the quick panel, sheets and widget cards.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// FooterTheme styles the home button and key help.
type FooterTheme struct {
	Home   lipgloss.Style
	Help   lipgloss.Style
	Status lipgloss.Style
}

// For returns the theme for the given appearance setting.
func For(mode settings.Theme) Theme {
	fg, faint, accent, frame := lipgloss.Color("252"), lipgloss.Color("244"), lipgloss.Color("212"), lipgloss.Color("240")
	if mode == settings.Light {
		fg, faint, accent, frame = lipgloss.Color("235"), lipgloss.Color("243"), lipgloss.Color("162"), lipgloss.Color("250")
	}

	return Theme{
		Mode: mode,
		Status: StatusTheme{
			Bar:      lipgloss.NewStyle().Foreground(fg).Bold(true),
			Airplane: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Dot:      lipgloss.NewStyle().Foreground(faint),
			DotOn:    lipgloss.NewStyle().Foreground(fg),
			Done:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Icon: IconTheme{
			Label:      lipgloss.NewStyle().Foreground(fg),
			Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")).Bold(true),
			Remove:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240")),
			Focus:      lipgloss.NewStyle().Foreground(accent).Underline(true),
			Ghost:      lipgloss.NewStyle().Foreground(faint).Italic(true),
			Installing: lipgloss.NewStyle().Foreground(faint).Italic(true),
		},
		Dock: DockTheme{
			Rule: lipgloss.NewStyle().Foreground(frame),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(frame).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(fg).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(fg),
			Faint: lipgloss.NewStyle().Foreground(faint),
		},
		Footer: FooterTheme{
			Home:   lipgloss.NewStyle().Foreground(fg),
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(accent),
		},
	}
}

// Default returns the dark theme.
func Default() Theme {
	return For(settings.Dark)
}

// AppIcon styles the glyph of e. Icons are shaded while editing, the way
// they dim when they start to wobble.
func (t Theme) AppIcon(e apps.Entry, editing bool) lipgloss.Style {
	tint, bg := apps.Swatch(e)
	if editing {
		bg = apps.Shade(bg, 0.3)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tint)).
		Background(lipgloss.Color(bg)).
		Bold(true)
}
