package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/settings"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

// PrettyPrint renders shell state for the CLI.
type PrettyPrint struct {
	Out    io.Writer
	Format string
	Locale string

	profile termenv.Profile
}

// New returns a printer writing to out. Colour support is detected from the
// environment.
func New(out io.Writer, format, locale string) *PrettyPrint {
	if out == nil {
		out = color.Output
	}
	if format == "" {
		format = FormatTable
	}
	return &PrettyPrint{
		Out:     out,
		Format:  format,
		Locale:  locale,
		profile: termenv.NewOutput(out).EnvColorProfile(),
	}
}

// structured writes v as JSON or YAML. It reports false for table output.
func (pp *PrettyPrint) structured(v any) (bool, error) {
	switch pp.Format {
	case FormatJSON:
		enc := json.NewEncoder(pp.Out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(pp.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("printers: unknown format %q", pp.Format)
	}
}

func (pp *PrettyPrint) title(s string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Out, s)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.Out, " none\n\n")
}

// Swatch renders an app glyph in its tint over its background.
func (pp *PrettyPrint) Swatch(e apps.Entry) string {
	tint, bg := apps.Swatch(e)
	return termenv.String(" " + e.Glyph + " ").
		Foreground(pp.profile.Color(tint)).
		Background(pp.profile.Color(bg)).
		String()
}

func (pp *PrettyPrint) name(e apps.Entry) string {
	return i18n.Translate(e.NameKey, pp.Locale)
}

func badge(n int) string {
	if n <= 0 {
		return ""
	}
	return color.New(color.FgHiRed, color.Bold).Sprintf("(%d)", n)
}

// Apps prints the marketplace listing.
func (pp *PrettyPrint) Apps(listings []app.Listing) error {
	if done, err := pp.structured(listings); done {
		return err
	}
	pp.title("Apps")
	if len(listings) == 0 {
		pp.none()
		return nil
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("State"))
	for _, l := range listings {
		state := faint.Sprint("available")
		switch {
		case l.Installing:
			state = color.YellowString("installing")
		case l.Installed && !l.Removable:
			state = color.CyanString("system")
		case l.Installed:
			state = color.GreenString("installed")
		}
		tbl.AddRow(pp.Swatch(l.Entry), l.ID, pp.name(l.Entry), state)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	return nil
}

// LayoutView is the structured form of `phoneshell layout`.
type LayoutView struct {
	layout.Snapshot `yaml:",inline"`
	Pages           [][]string    `json:"pages" yaml:"pages"`
	Badges          notify.Badges `json:"badges" yaml:"badges"`
}

// Layout prints the home screen page by page.
func (pp *PrettyPrint) Layout(snap layout.Snapshot, entries []apps.Entry) error {
	byID := make(map[string]apps.Entry, len(entries))
	badges := notify.Badges{}
	for _, e := range entries {
		byID[e.ID] = e
		if e.NotificationCount > 0 {
			badges[e.ID] = e.NotificationCount
		}
	}
	pages := make([][]string, 0, snap.PageCount)
	for i := 0; i < snap.PageCount; i++ {
		page := layout.Page(snap.Main, i)
		if page == nil {
			page = []string{}
		}
		pages = append(pages, page)
	}
	if done, err := pp.structured(LayoutView{Snapshot: snap, Pages: pages, Badges: badges}); done {
		return err
	}

	faint := color.New(color.Faint)
	pp.title("Widgets")
	if len(snap.Widgets) == 0 {
		pp.none()
	} else {
		_, _ = fmt.Fprintf(pp.Out, "  %s\n\n", strings.Join(snap.Widgets, ", "))
	}

	cell := func(id string) string {
		e, ok := byID[id]
		if !ok {
			return id
		}
		return strings.TrimSpace(pp.Swatch(e) + " " + id + " " + badge(e.NotificationCount))
	}
	for i, page := range pages {
		pp.title(fmt.Sprintf("Page %d", i+1))
		if len(page) == 0 {
			pp.none()
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		for r := 0; r < len(page); r += layout.Columns {
			end := r + layout.Columns
			if end > len(page) {
				end = len(page)
			}
			row := make([]interface{}, 0, layout.Columns)
			for _, id := range page[r:end] {
				row = append(row, cell(id))
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(pp.Out, tbl)
		_, _ = fmt.Fprintln(pp.Out)
	}

	pp.title(fmt.Sprintf("Dock %d/%d", len(snap.Dock), layout.MaxDock))
	if len(snap.Dock) == 0 {
		pp.none()
	} else {
		cells := make([]string, 0, len(snap.Dock))
		for _, id := range snap.Dock {
			cells = append(cells, cell(id))
		}
		_, _ = fmt.Fprintf(pp.Out, "  %s\n\n", strings.Join(cells, "  "))
	}
	_, _ = faint.Fprintf(pp.Out, "mode %s, screen %d of %d\n", snap.Mode, snap.Screen, snap.ScreenCount)
	return nil
}

// Notifications prints the notification list.
func (pp *PrettyPrint) Notifications(ns []notify.Notification) error {
	if ns == nil {
		ns = []notify.Notification{}
	}
	if done, err := pp.structured(ns); done {
		return err
	}
	pp.title(i18n.Translate("notifications", pp.Locale))
	if len(ns) == 0 {
		pp.none()
		return nil
	}
	y := color.New(color.FgHiYellow, color.Faint)
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, n := range ns {
		tbl.AddRow(y.Sprint(n.SourceAppID), bold.Sprint(n.Title), n.Message)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	return nil
}

// Settings prints the phone settings.
func (pp *PrettyPrint) Settings(s settings.Settings) error {
	if done, err := pp.structured(s); done {
		return err
	}
	pp.title(i18n.Translate("settings_title", pp.Locale))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(i18n.Translate("theme", pp.Locale), string(s.Theme))
	tbl.AddRow(i18n.Translate("airplane_mode", pp.Locale), fmt.Sprint(s.AirplaneMode))
	tbl.AddRow("locale", s.Locale)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
	return nil
}

// DoctorReport is the structured form of `phoneshell doctor`.
type DoctorReport struct {
	Keys     []string `json:"keys" yaml:"keys"`
	Healthy  bool     `json:"healthy" yaml:"healthy"`
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// Doctor prints the stored keys and invariant problems.
func (pp *PrettyPrint) Doctor(r DoctorReport) error {
	if done, err := pp.structured(r); done {
		return err
	}
	pp.title("Stored keys")
	if len(r.Keys) == 0 {
		pp.none()
	} else {
		for _, k := range r.Keys {
			_, _ = fmt.Fprintf(pp.Out, "  %s\n", k)
		}
		_, _ = fmt.Fprintln(pp.Out)
	}
	if r.Healthy {
		_, _ = fmt.Fprintln(pp.Out, color.GreenString("layout ok"))
		return nil
	}
	for _, p := range r.Problems {
		_, _ = fmt.Fprintln(pp.Out, color.RedString("✗ %s", p))
	}
	return nil
}
