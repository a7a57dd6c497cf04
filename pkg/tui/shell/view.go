package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/tui/ui/overlay"
)

// View draws the phone row by row. Every rectangle comes from geometry so
// the arena and the picture agree.
func (m *Model) View() string {
	if m.width < minWidth || m.height < phoneH {
		return fmt.Sprintf("terminal too small: need %dx%d", minWidth, phoneH)
	}

	badges := m.svc.Badges()
	rows := make([]string, 0, phoneH)
	rows = append(rows, m.statusBar(badges), "")
	if m.svc.Home.Pager.OnWidgets() {
		rows = append(rows, m.widgetRows()...)
	} else {
		rows = append(rows, m.gridRows(badges)...)
	}
	rows = append(rows, m.pageDots(), m.th.Dock.Rule.Render(strings.Repeat("─", gridW)))
	rows = append(rows, m.dockRows(badges)...)
	rows = append(rows, center(m.th.Footer.Home.Render("( ● )"), gridW), m.footer())

	indent := strings.Repeat(" ", m.geo.left)
	for i, r := range rows {
		rows[i] = indent + fit(r, m.width-m.geo.left)
	}
	screen := strings.Join(rows, "\n")

	var sheetView string
	switch m.sheet {
	case sheetStore:
		sheetView = m.th.Panel.Frame.Render(m.market.View())
	case sheetPanel:
		sheetView = m.panelView()
	case sheetApp:
		sheetView = m.appView()
	}
	m.sheetRect = layout.Rect{}
	if sheetView == "" {
		return screen
	}
	view, r := overlay.Compose(screen, m.width, phoneH, sheetView, overlay.Placement{
		Horizontal: lipgloss.Center,
		Vertical:   lipgloss.Top,
		MarginY:    rowGrid,
	})
	m.sheetRect = layout.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
	return view
}

func (m *Model) statusBar(badges notify.Badges) string {
	st := m.th.Status
	left := st.Bar.Render(m.now().Format("15:04"))
	if n := badges.Total(); n > 0 {
		left += " " + m.th.Icon.Badge.Render(fmt.Sprintf(" %d ", n))
	}
	if m.svc.Settings().AirplaneMode {
		left += " " + st.Airplane.Render("✈")
	}
	if !m.svc.Home.Edit.Editing() {
		return left
	}
	done := st.Done.Render(i18n.Translate("done", m.svc.Locale()))
	return fit(left, gridW-doneW) + center(done, doneW)
}

// gridRows renders the current app page, cellH lines per grid row.
func (m *Model) gridRows(badges notify.Badges) []string {
	h := m.svc.Home
	ids := layout.Page(h.Registry.MainIDs(), h.Pager.AppPage())
	if installing := m.svc.Installing(); installing != "" && len(ids) < layout.PageCapacity &&
		h.Pager.AppPage() == layout.PageCount(len(h.Registry.MainIDs()))-1 {
		ids = append(ids, installing)
	}

	rows := make([]string, 0, gridH)
	for r := 0; r < layout.Rows; r++ {
		cells := make([][]string, 0, layout.Columns)
		for c := 0; c < layout.Columns; c++ {
			i := r*layout.Columns + c
			if i >= len(ids) {
				cells = append(cells, blankCell())
				continue
			}
			cells = append(cells, m.iconCell(ids[i], layout.ZoneMain, badges))
		}
		rows = append(rows, joinCells(cells)...)
	}
	return rows
}

func (m *Model) dockRows(badges notify.Badges) []string {
	ids := m.svc.Home.Dock.IDs()
	cells := make([][]string, 0, len(ids))
	for _, id := range ids {
		cells = append(cells, m.iconCell(id, layout.ZoneDock, badges))
	}
	lead := strings.Repeat(" ", (gridW-len(ids)*cellW)/2)
	rows := joinCells(cells)
	if len(rows) == 0 {
		rows = make([]string, cellH)
	}
	for i := range rows {
		rows[i] = lead + rows[i]
	}
	return rows
}

// iconCell is the cellW x cellH picture of one app: the marker, glyph and
// badge on the first line and the label under it.
func (m *Model) iconCell(id string, zone layout.Zone, badges notify.Badges) []string {
	h := m.svc.Home
	loc := m.svc.Locale()
	editing := h.Edit.Editing()

	e, ok := h.Registry.Get(id)
	if !ok {
		// The pending install has no registry entry yet.
		e, _ = h.Catalog().Lookup(id)
		label := truncate.StringWithTail(i18n.Translate(e.NameKey, loc), cellW-1, "…")
		return []string{
			fit("  "+m.th.Icon.Installing.Render(" … "), cellW),
			center(m.th.Icon.Installing.Render(label), cellW),
			"",
		}
	}

	marker := "  "
	if editing && e.Removable {
		marker = m.th.Icon.Remove.Render("✕") + " "
	}
	icon := m.th.AppIcon(e, editing).Render(" " + e.Glyph + " ")
	if s, dragging := h.Drag.Session(); dragging && s.SourceID == id && s.Kind == layout.KindApp {
		icon = m.th.Icon.Ghost.Render(" " + e.Glyph + " ")
	}
	top := marker + icon
	if n := badges.Count(id); n > 0 {
		top += m.th.Icon.Badge.Render(badgeText(n))
	}

	label := truncate.StringWithTail(i18n.Translate(e.NameKey, loc), cellW-1, "…")
	style := m.th.Icon.Label
	if f, ok := m.focused(); ok && m.sheet == sheetNone && f.id == id && f.zone == zone {
		style = m.th.Icon.Focus
	}
	return []string{fit(top, cellW), center(style.Render(label), cellW), ""}
}

func badgeText(n int) string {
	if n > 9 {
		return "9+"
	}
	return fmt.Sprint(n)
}

// widgetRows renders the widget page: one boxed card per widget.
func (m *Model) widgetRows() []string {
	h := m.svc.Home
	loc := m.svc.Locale()
	kinds := h.Widgets.Kinds()

	rows := make([]string, 0, gridH)
	if len(kinds) == 0 {
		rows = append(rows, center(m.th.Panel.Faint.Render(i18n.Translate("no_widgets", loc)), gridW))
	}
	for i, kind := range kinds {
		if i > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, m.widgetCard(kind)...)
	}
	for len(rows) < gridH {
		rows = append(rows, "")
	}
	return rows[:gridH]
}

func (m *Model) widgetCard(kind string) []string {
	loc := m.svc.Locale()
	pt := m.th.Panel
	title := pt.Title
	if f, ok := m.focused(); ok && m.sheet == sheetNone && f.kind == layout.KindWidget && f.id == kind {
		title = m.th.Icon.Focus
	}

	var body []string
	switch kind {
	case layout.WidgetClock:
		now := m.now()
		body = []string{pt.Body.Render(now.Format("15:04")), pt.Faint.Render(now.Format("Mon 2 Jan"))}
	case layout.WidgetMusic:
		body = []string{pt.Faint.Render(i18n.Translate("not_playing", loc)), ""}
	}
	if s, dragging := m.svc.Home.Drag.Session(); dragging && s.SourceID == kind && s.Kind == layout.KindWidget {
		title = m.th.Icon.Ghost
	}

	inner := gridW - 2
	border := pt.Faint
	top := border.Render("╭" + strings.Repeat("─", inner) + "╮")
	if m.svc.Home.Edit.Editing() {
		top = m.th.Icon.Remove.Render("✕") + border.Render(" "+strings.Repeat("─", inner-1)+"╮")
	}
	card := []string{top}
	for _, line := range append([]string{title.Render(i18n.Translate("widget_"+kind, loc))}, body...) {
		card = append(card, border.Render("│")+fit(" "+line, inner)+border.Render("│"))
	}
	return append(card, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
}

// pageDots shows one dot per screen; the widget screen is a diamond. While
// swiping, the dot follows the screen the gesture would snap to.
func (m *Model) pageDots() string {
	p := m.svc.Home.Pager
	current := p.Screen()
	if p.Swiping() && p.Width() > 0 {
		current = (p.Offset() + p.Width()/2) / p.Width()
	}
	dots := make([]string, 0, p.ScreenCount())
	for i := 0; i < p.ScreenCount(); i++ {
		off, on := "○", "●"
		if i == 0 {
			off, on = "◇", "◆"
		}
		if i == current {
			dots = append(dots, m.th.Status.DotOn.Render(on))
		} else {
			dots = append(dots, m.th.Status.Dot.Render(off))
		}
	}
	return center(strings.Join(dots, " "), gridW)
}

func (m *Model) footer() string {
	if m.status != "" {
		return m.th.Footer.Status.Render(m.status)
	}
	k := m.keys
	var text string
	switch {
	case m.sheet == sheetStore:
		text = help(k.Up, k.Open, k.Home)
	case m.sheet != sheetNone:
		return ""
	case m.carrying:
		text = help(k.Left, k.PrevPage, k.Pick, k.DropEnd, k.Home)
	case m.svc.Home.Edit.Editing():
		text = help(k.Left, k.PrevPage, k.Pick, k.Remove, k.Home)
	default:
		text = help(k.Left, k.PrevPage, k.Open, k.Edit, k.Store, k.Panel, k.Quit)
	}
	return m.th.Footer.Help.Render(text)
}

func blankCell() []string {
	return []string{"", "", ""}
}

// joinCells lays cells side by side, each padded to cellW.
func joinCells(cells [][]string) []string {
	if len(cells) == 0 {
		return nil
	}
	out := make([]string, cellH)
	for _, c := range cells {
		for line := 0; line < cellH; line++ {
			out[line] += fit(c[line], cellW)
		}
	}
	return out
}

// fit pads or cuts s to exactly w columns.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	if gap := w - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func center(s string, w int) string {
	gap := w - ansi.StringWidth(s)
	if gap <= 0 {
		return fit(s, w)
	}
	return fit(strings.Repeat(" ", gap/2)+s, w)
}
