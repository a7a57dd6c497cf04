package shell

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/settings"
)

// swipeSlop is how far a press travels before it counts as a swipe.
const swipeSlop = 2

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return nil, true
	}
	switch m.sheet {
	case sheetStore:
		return m.storeKey(msg), false
	case sheetPanel:
		return nil, m.panelKey(msg)
	case sheetApp:
		switch {
		case key.Matches(msg, m.keys.Home):
			m.pressHome()
		case key.Matches(msg, m.keys.Quit):
			return nil, true
		}
		return nil, false
	}

	h := m.svc.Home
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Home):
		m.pressHome()
	case key.Matches(msg, m.keys.Left):
		m.focus--
	case key.Matches(msg, m.keys.Right):
		m.focus++
	case key.Matches(msg, m.keys.Up):
		m.focusVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.focusVertical(1)
	case key.Matches(msg, m.keys.PrevPage):
		h.Pager.Prev()
		m.focus = 0
	case key.Matches(msg, m.keys.NextPage):
		h.Pager.Next()
		m.focus = 0
	case key.Matches(msg, m.keys.Store):
		m.openSheet(sheetStore)
	case key.Matches(msg, m.keys.Panel):
		m.openSheet(sheetPanel)
	case h.Edit.Editing():
		m.editKey(msg)
	case key.Matches(msg, m.keys.Edit):
		h.Edit.Enter()
		m.status = ""
	case key.Matches(msg, m.keys.Open):
		if f, ok := m.focused(); ok && f.kind == layout.KindApp {
			m.open(f.id)
		}
	}
	return nil, false
}

// editKey handles the keys that only mean something while editing.
func (m *Model) editKey(msg tea.KeyPressMsg) {
	h := m.svc.Home
	f, ok := m.focused()
	switch {
	case key.Matches(msg, m.keys.Pick):
		if !ok {
			return
		}
		if !h.Drag.Dragging() {
			if res := h.Drag.BeginDrag(f.id, f.kind); res.Applied {
				m.carrying = true
				m.status = i18n.Sprintf(m.svc.Locale(), "moving", m.name(f.id, f.kind))
			}
			return
		}
		m.drop(f.zone, f.id)
	case key.Matches(msg, m.keys.DropEnd):
		if !h.Drag.Dragging() {
			return
		}
		zone := layout.ZoneMain
		switch {
		case ok:
			zone = f.zone
		case h.Pager.OnWidgets():
			zone = layout.ZoneWidgets
		}
		m.drop(zone, "")
	case key.Matches(msg, m.keys.Remove):
		if ok && !h.Drag.Dragging() {
			m.remove(f.id, f.kind)
		}
	}
}

// focusVertical moves focus a row up or down. The dock sits below the last
// row of the page; widget cards are stacked one per row.
func (m *Model) focusVertical(dir int) {
	items := m.focusables()
	onPage := 0
	for _, it := range items {
		if it.zone != layout.ZoneDock {
			onPage++
		}
	}
	step := layout.Columns
	if m.svc.Home.Pager.OnWidgets() {
		step = 1
	}

	switch {
	case dir > 0 && m.focus < onPage:
		next := m.focus + step
		if next >= onPage {
			next = onPage
		}
		if next < len(items) {
			m.focus = next
		}
	case dir < 0 && m.focus >= onPage:
		if onPage > 0 {
			m.focus = onPage - 1
		}
	case dir < 0 && m.focus-step >= 0:
		m.focus -= step
	}
}

func (m *Model) storeKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Home):
		m.closeSheet()
		return nil
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.market.SelectedItem().(storeItem); ok {
			return m.beginInstall(it.ID)
		}
		return nil
	}
	var cmd tea.Cmd
	m.market, cmd = m.market.Update(msg)
	return cmd
}

// panelKey reports whether the program should quit.
func (m *Model) panelKey(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Home), key.Matches(msg, m.keys.Panel):
		m.closeSheet()
	case key.Matches(msg, m.keys.Theme):
		m.updateSettings(settings.Settings.ToggleTheme)
	case key.Matches(msg, m.keys.Airplane):
		m.updateSettings(settings.Settings.ToggleAirplane)
	case key.Matches(msg, m.keys.Clear):
		if err := m.svc.ClearNotifications(); err != nil {
			m.status = err.Error()
		}
	}
	return false
}

func (m *Model) updateSettings(fn func(settings.Settings) settings.Settings) {
	if _, err := m.svc.UpdateSettings(fn); err != nil {
		m.status = err.Error()
	}
	m.applyTheme()
}

// pressHome is the home button: it cancels a carried icon, leaves edit mode,
// or goes back to the first app page.
func (m *Model) pressHome() {
	h := m.svc.Home
	if m.carrying {
		h.Drag.EndDrag()
		m.carrying = false
		m.status = ""
		return
	}
	if m.svc.GoHome() == layout.HomeExitedEdit {
		m.leftEdit()
		return
	}
	m.closeSheet()
	m.focus = 0
}

func (m *Model) openSheet(s sheet) {
	m.sheet = s
	if s == sheetStore {
		m.refreshStore()
	}
}

func (m *Model) closeSheet() {
	m.sheet = sheetNone
	m.openApp = ""
}

// open launches id. The store and settings apps open their sheets.
func (m *Model) open(id string) {
	ok, err := m.svc.Open(id)
	if err != nil {
		m.status = err.Error()
	}
	if !ok {
		return
	}
	switch id {
	case apps.Marketplace:
		m.openSheet(sheetStore)
	case apps.Settings:
		m.openSheet(sheetPanel)
	default:
		m.sheet = sheetApp
		m.openApp = id
	}
	m.log.Debug("opened app", "app", id)
}

func (m *Model) remove(id string, kind layout.ItemKind) {
	h := m.svc.Home
	var res layout.Result
	if kind == layout.KindWidget {
		res = h.RemoveWidget(id)
	} else {
		res = h.Edit.Remove(id)
	}
	switch {
	case res.Applied:
		m.status = ""
		m.log.Info("removed", "kind", kind, "id", id)
	case res.Reason == layout.ReasonNotRemovable:
		m.status = i18n.Sprintf(m.svc.Locale(), "not_removable", m.name(id, kind))
	}
}

// drop lands the carried item on zone before target and ends the drag.
func (m *Model) drop(zone layout.Zone, target string) {
	h := m.svc.Home
	out := h.Drag.Drop(zone, target)
	h.Drag.EndDrag()
	m.carrying = false
	m.reportDrop(out)
	if out.Applied {
		m.focusID(out.Source)
	}
}

func (m *Model) reportDrop(out layout.DropOutcome) {
	m.status = ""
	if out.Reason == layout.ReasonDockFull {
		m.status = i18n.Translate("dock_full", m.svc.Locale())
	}
	m.log.Debug("drop", "source", out.Source, "zone", out.Zone, "target", out.Target, "applied", out.Applied, "reason", out.Reason)
}

func (m *Model) name(id string, kind layout.ItemKind) string {
	loc := m.svc.Locale()
	if kind == layout.KindWidget {
		return i18n.Translate("widget_"+id, loc)
	}
	if e, ok := m.svc.Home.Registry.Get(id); ok {
		return i18n.Translate(e.NameKey, loc)
	}
	return id
}

func (m *Model) beginInstall(id string) tea.Cmd {
	if err := m.svc.BeginInstall(id); err != nil {
		m.status = err.Error()
		return nil
	}
	e, _ := m.svc.Home.Catalog().Lookup(id)
	m.status = i18n.Sprintf(m.svc.Locale(), "installing", i18n.Translate(e.NameKey, m.svc.Locale()))
	m.refreshStore()
	return tea.Tick(app.InstallDelay, func(time.Time) tea.Msg { return installDoneMsg{} })
}

// finishInstall lands the pending install and shows the page it went to.
func (m *Model) finishInstall() {
	id, err := m.svc.CompleteInstall()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = i18n.Translate("installed", m.svc.Locale())
	m.refreshStore()
	h := m.svc.Home
	if page := layout.PageOf(h.Registry.MainIDs(), id); page >= 0 && m.sheet == sheetNone {
		h.Pager.SetScreen(layout.ScreenForPage(page))
		m.focusID(id)
	}
	if m.stale {
		m.reload()
	}
}

func (m *Model) handleClick(pt layout.Point) {
	h := m.svc.Home
	if m.sheet != sheetNone {
		if !m.sheetRect.Contains(pt) {
			m.closeSheet()
		}
		return
	}
	if m.geo.home.Contains(pt) {
		m.pressHome()
		return
	}
	if h.Edit.Editing() && m.geo.done.Contains(pt) {
		if h.Edit.Done() {
			m.leftEdit()
		}
		return
	}

	zone, id := h.Arena.Hit(pt)
	kind := layout.KindApp
	if zone == layout.ZoneWidgets {
		kind = layout.KindWidget
	}
	m.press = &press{start: pt, id: id, kind: kind}

	if h.Edit.Editing() {
		if m.carrying || id == "" {
			return
		}
		if r, ok := h.Arena.Locate(id); ok && removeHit(r, pt) {
			m.press = nil
			m.remove(id, kind)
		}
		return
	}
	if zone == layout.ZoneNone {
		return
	}
	if zone != layout.ZoneDock {
		h.Pager.SwipeBegin(pt.X)
	}
	// Holding anywhere on the home surface arms edit mode, gaps included.
	h.Edit.PressBegin()
}

func (m *Model) handleMotion(pt layout.Point) {
	p := m.press
	if p == nil {
		return
	}
	h := m.svc.Home

	if h.Edit.Editing() {
		if h.Pager.Swiping() {
			// The long press landed mid-gesture; snap back and start dragging.
			h.Pager.SwipeEnd()
			p.swiping = false
		}
		if !h.Drag.Dragging() && p.id != "" && !m.carrying {
			if res := h.Drag.BeginDrag(p.id, p.kind); res.Applied {
				m.status = i18n.Sprintf(m.svc.Locale(), "moving", m.name(p.id, p.kind))
			}
		}
		if h.Drag.Dragging() && !m.carrying {
			edge := m.geo.atEdge(pt)
			if edge != p.edge {
				p.edge = edge
				switch edge {
				case -1:
					h.Pager.Prev()
				case 1:
					h.Pager.Next()
				}
			}
		}
		return
	}

	if !p.swiping && h.Pager.Swiping() && abs(pt.X-p.start.X) >= swipeSlop {
		p.swiping = true
		h.Edit.PressEnd()
	}
	if p.swiping {
		h.Pager.SwipeMove(pt.X)
	}
}

func (m *Model) handleRelease(pt layout.Point) {
	p := m.press
	m.press = nil
	if p == nil {
		return
	}
	h := m.svc.Home
	if h.Pager.Swiping() {
		h.Pager.SwipeEnd()
	}
	if h.Drag.Dragging() && !m.carrying {
		out := h.Drag.ResolveDrop(pt)
		h.Drag.EndDrag()
		m.reportDrop(out)
		return
	}

	// A press that outlived the long-press delay has already switched modes,
	// so TapAllowed turns it into a no-op.
	h.Edit.PressEnd()
	if p.swiping || p.id == "" || p.kind != layout.KindApp || !h.Edit.TapAllowed() {
		return
	}
	if _, id := h.Arena.Hit(pt); id == p.id {
		m.open(id)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
