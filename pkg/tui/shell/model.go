// Package shell is the interactive home screen: a Bubble Tea program driving
// the layout engine with the keyboard and mouse.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/store"
	"tableflip.dev/phoneshell/pkg/tui/theme"
)

type sheet int

const (
	sheetNone sheet = iota
	sheetPanel
	sheetStore
	sheetApp
)

// Options configures the home screen.
type Options struct {
	Logger *slog.Logger
	// Locale is used until the user picks one in settings.
	Locale string
}

// focusItem is one keyboard-reachable thing on the visible screen.
type focusItem struct {
	id   string
	zone layout.Zone
	kind layout.ItemKind
}

// press is a mouse button held down.
type press struct {
	start   layout.Point
	id      string
	kind    layout.ItemKind
	swiping bool
	edge    int
}

type (
	installDoneMsg struct{}
	clockMsg       time.Time

	watchStartedMsg struct {
		ch     <-chan store.Event
		cancel context.CancelFunc
		err    error
	}
	watchEventMsg struct {
		event store.Event
	}
	watchStoppedMsg struct{}
)

// Model is the Bubble Tea model for the home screen.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	sched *tickScheduler
	log   *slog.Logger
	keys  keyMap
	th    theme.Theme
	now   func() time.Time

	width, height int
	geo           geometry

	focus    int
	carrying bool
	press    *press
	status   string

	sheet     sheet
	sheetRect layout.Rect
	market    list.Model
	openApp   string

	stale       bool
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model over p.
func New(ctx context.Context, p store.Persistence, opts Options) (*Model, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	sched := newTickScheduler()
	svc, err := app.New(p, app.Options{
		Logger:    log,
		Scheduler: sched,
		Locale:    opts.Locale,
	})
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		sched:  sched,
		log:    log.With("component", "tui"),
		keys:   defaultKeys(),
		th:     theme.For(svc.Settings().Theme),
		now:    time.Now,
		market: newStoreList(),
	}
	m.resize(minWidth, phoneH)
	return m, nil
}

// Run starts the full-screen home screen and blocks until it exits.
func Run(ctx context.Context, p store.Persistence, opts Options) error {
	m, err := New(ctx, p, opts)
	if err != nil {
		return err
	}
	defer m.stopWatch()
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(startWatchCmd(m.ctx, m.svc), clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case clockMsg:
		cmds = append(cmds, clockTick())
	case timerFiredMsg:
		if m.sched.Fire(msg.id) && m.svc.Home.Edit.Editing() {
			m.log.Debug("long press entered edit mode")
			m.status = ""
		}
	case installDoneMsg:
		m.finishInstall()
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, store.ErrWatchUnsupported) {
				m.log.Warn("watch failed", "err", msg.err)
			}
			break
		}
		m.watchCh, m.watchCancel = msg.ch, msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if cmd, quit := m.handleKey(msg); quit {
			return m, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		m.handleClick(point(msg.Mouse()))
	case tea.MouseMotionMsg:
		m.handleMotion(point(msg.Mouse()))
	case tea.MouseReleaseMsg:
		m.handleRelease(point(msg.Mouse()))
	default:
		if m.sheet == sheetStore {
			var cmd tea.Cmd
			m.market, cmd = m.market.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.clampFocus()
	placeArena(m.svc.Home.Arena, m.geo, m.svc.Home)
	cmds = append(cmds, m.sched.Drain())
	return m, tea.Batch(cmds...)
}

func point(mouse tea.Mouse) layout.Point {
	return layout.Point{X: mouse.X, Y: mouse.Y}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.geo = newGeometry(w, h)
	m.svc.Home.Pager.SetWidth(gridW)
	m.market.SetSize(min(w, gridW+4)-4, max(phoneH-8, 6))
	placeArena(m.svc.Home.Arena, m.geo, m.svc.Home)
}

// focusables lists what the arrow keys move between, in reading order.
func (m *Model) focusables() []focusItem {
	h := m.svc.Home
	var out []focusItem
	if h.Pager.OnWidgets() {
		for _, k := range h.Widgets.Kinds() {
			out = append(out, focusItem{id: k, zone: layout.ZoneWidgets, kind: layout.KindWidget})
		}
	} else {
		for _, id := range layout.Page(h.Registry.MainIDs(), h.Pager.AppPage()) {
			out = append(out, focusItem{id: id, zone: layout.ZoneMain, kind: layout.KindApp})
		}
	}
	for _, id := range h.Dock.IDs() {
		out = append(out, focusItem{id: id, zone: layout.ZoneDock, kind: layout.KindApp})
	}
	return out
}

func (m *Model) focused() (focusItem, bool) {
	items := m.focusables()
	if m.focus < 0 || m.focus >= len(items) {
		return focusItem{}, false
	}
	return items[m.focus], true
}

func (m *Model) clampFocus() {
	n := len(m.focusables())
	switch {
	case n == 0:
		m.focus = 0
	case m.focus >= n:
		m.focus = n - 1
	case m.focus < 0:
		m.focus = 0
	}
}

func (m *Model) focusID(id string) {
	for i, it := range m.focusables() {
		if it.id == id {
			m.focus = i
			return
		}
	}
}

// applyTheme re-reads the theme after settings change.
func (m *Model) applyTheme() {
	m.th = theme.For(m.svc.Settings().Theme)
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	ch := m.watchCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchStoppedMsg{}
		}
		return watchEventMsg{event: ev}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads after another process changed the store. A
// reload would drop an edit session or install in progress, so it waits.
func (m *Model) handleWatchEvent(ev store.Event) {
	m.log.Debug("store changed", "key", ev.Key, "type", ev.Type)
	if m.busy() {
		m.stale = true
		return
	}
	m.reload()
}

func (m *Model) busy() bool {
	h := m.svc.Home
	return h.Edit.Editing() || h.Drag.Dragging() || m.press != nil || m.svc.Installing() != ""
}

func (m *Model) reload() {
	screen := m.svc.Home.Pager.Screen()
	m.svc.Reload()
	m.svc.Home.Pager.SetWidth(gridW)
	m.svc.Home.Pager.SetScreen(screen)
	m.stale = false
	m.applyTheme()
}

// leftEdit runs after edit mode ends by any path.
func (m *Model) leftEdit() {
	m.carrying = false
	if m.stale {
		m.reload()
	}
}
