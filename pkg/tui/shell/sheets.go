package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/tui/components/panel"
)

// storeItem is one marketplace row.
type storeItem struct {
	ID         string
	Name       string
	Glyph      string
	Installed  bool
	Installing bool
	locale     string
}

func (i storeItem) Title() string { return i.Glyph + " " + i.Name }

func (i storeItem) Description() string {
	switch {
	case i.Installing:
		return i18n.Sprintf(i.locale, "installing", i.Name)
	case i.Installed:
		return i18n.Translate("installed", i.locale)
	}
	return ""
}

func (i storeItem) FilterValue() string { return i.Name }

func newStoreList() list.Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	l := list.New([]list.Item{}, d, gridW, phoneH-8)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// refreshStore rebuilds the marketplace rows, keeping the cursor.
func (m *Model) refreshStore() {
	loc := m.svc.Locale()
	listings := m.svc.Marketplace()
	items := make([]list.Item, 0, len(listings))
	for _, l := range listings {
		items = append(items, storeItem{
			ID:         l.ID,
			Name:       i18n.Translate(l.NameKey, loc),
			Glyph:      l.Glyph,
			Installed:  l.Installed,
			Installing: l.Installing,
			locale:     loc,
		})
	}
	idx := m.market.Index()
	m.market.Title = i18n.Translate("marketplace_title", loc)
	m.market.SetItems(items)
	if idx < len(items) {
		m.market.Select(idx)
	}
}

// panelView renders the quick panel: toggles then the notification list.
func (m *Model) panelView() string {
	loc := m.svc.Locale()
	st := m.svc.Settings()

	airplane := "off"
	if st.AirplaneMode {
		airplane = "on"
	}
	lines := []string{
		fmt.Sprintf("✈ %s: %s", i18n.Translate("airplane_mode", loc), airplane),
		fmt.Sprintf("◐ %s: %s", i18n.Translate("theme", loc), i18n.Translate("theme_"+string(st.Theme), loc)),
		"",
	}
	notes := m.svc.Notifications()
	if len(notes) == 0 {
		lines = append(lines, i18n.Translate("no_notifications", loc))
	}
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("%s %s: %s", glyphFor(n.SourceAppID), n.Title, n.Message))
	}

	p := panel.New(m.th.Panel)
	p.SetWidth(gridW)
	p.SetContent(i18n.Translate("notifications", loc), lines)
	p.SetHint(help(m.keys.Theme, m.keys.Airplane, m.keys.Clear, m.keys.Home))
	view, _ := p.View()
	return view
}

// appView renders the screen of an open app. Only Phone and Messages have
// content of their own.
func (m *Model) appView() string {
	loc := m.svc.Locale()
	title := m.openApp
	if e, ok := m.svc.Home.Registry.Get(m.openApp); ok {
		title = e.Glyph + " " + i18n.Translate(e.NameKey, loc)
	}

	var lines []string
	switch m.openApp {
	case apps.Phone:
		lines = append(lines, i18n.Translate("recent_calls", loc))
		for _, c := range m.svc.Calls() {
			lines = append(lines, fmt.Sprintf("%s %s", callMarker(c.Direction), caller(c.ContactName, c.Number)))
		}
	case apps.Messages:
		lines = append(lines, i18n.Translate("conversations", loc))
		for _, c := range m.svc.Conversations() {
			line := caller(c.ContactName, c.PhoneNumber)
			if c.Unread > 0 {
				line += fmt.Sprintf(" (%d)", c.Unread)
			}
			lines = append(lines, line)
		}
	case apps.Music:
		lines = append(lines, i18n.Translate("not_playing", loc))
	default:
		lines = append(lines, i18n.Translate("nothing_here", loc))
	}

	p := panel.New(m.th.Panel)
	p.SetWidth(gridW)
	p.SetContent(title, lines)
	p.SetHint(help(m.keys.Home))
	view, _ := p.View()
	return view
}

func caller(name, number string) string {
	if name != "" {
		return name
	}
	return number
}

func callMarker(d notify.Direction) string {
	switch d {
	case notify.Missed:
		return "✗"
	case notify.Outgoing:
		return "↗"
	}
	return "↙"
}

func glyphFor(id string) string {
	if e, ok := apps.Lookup(id); ok {
		return e.Glyph
	}
	return "•"
}
