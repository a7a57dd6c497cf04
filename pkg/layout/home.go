package layout

import (
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/store"
)

// Options configures Load.
type Options struct {
	// KV persists the layout. Nil keeps everything in memory.
	KV KV
	// Logger receives persistence warnings. Nil discards them.
	Logger *slog.Logger
	// Scheduler drives the long-press timer. Nil disables long press.
	Scheduler Scheduler
	// Catalog resolves app ids and supplies the factory layout. Nil uses
	// apps.Standard().
	Catalog *apps.Catalog
}

// Home is the single owner of the home-screen state.
type Home struct {
	Registry *Registry
	Dock     *Dock
	Widgets  *Widgets
	Pager    *Pager
	Edit     *EditMode
	Drag     *DragDrop
	Arena    *Arena

	catalog *apps.Catalog
	log     *slog.Logger
}

// Load builds a Home from persisted state. Missing or malformed values fall
// back to defaults; Load never fails.
func Load(opts Options) *Home {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cat := opts.Catalog
	if cat == nil {
		cat = apps.Standard()
	}
	p := &persister{kv: opts.KV, log: log}

	reg := newRegistry(loadEntries(p, cat), p)

	dockIDs, ok := p.loadIDs(store.KeyDockOrder)
	if !ok {
		dockIDs = cat.DefaultDock()
	}
	dock := newDock(dockIDs, reg, p)

	widgetKinds, ok := p.loadIDs(store.KeyWidgets)
	if !ok {
		widgetKinds = DefaultWidgets()
	}
	widgets := newWidgets(widgetKinds, p)

	edit := newEditMode(opts.Scheduler, reg)
	arena := &Arena{}
	drag := &DragDrop{reg: reg, dock: dock, widgets: widgets, edit: edit, arena: arena}
	edit.onExit = drag.EndDrag

	return &Home{
		Registry: reg,
		Dock:     dock,
		Widgets:  widgets,
		Pager:    NewPager(func() int { return len(reg.MainIDs()) }),
		Edit:     edit,
		Drag:     drag,
		Arena:    arena,
		catalog:  cat,
		log:      log,
	}
}

// loadEntries restores the installed set. Stored ids are kept when the
// catalogue knows them, and system apps missing from storage are appended.
func loadEntries(p *persister, cat *apps.Catalog) []apps.Entry {
	ids, ok := p.loadIDs(store.KeyAppOrder)
	if !ok {
		return cat.DefaultInstalled()
	}
	known := func(id string) bool {
		_, ok := cat.Lookup(id)
		return ok
	}
	ids = dedupe(ids, known)
	for _, e := range cat.DefaultInstalled() {
		if !e.Removable && indexOf(ids, e.ID) < 0 {
			ids = append(ids, e.ID)
		}
	}
	out := make([]apps.Entry, 0, len(ids))
	for _, id := range ids {
		e, _ := cat.Lookup(id)
		out = append(out, e)
	}
	return out
}

// Install adds the catalogue app id to the registry.
func (h *Home) Install(id string) Result {
	e, ok := h.catalog.Lookup(id)
	if !ok {
		return rejected(ReasonUnknownApp)
	}
	return h.Registry.Install(e)
}

// Uninstall removes id regardless of mode. Edit-mode removal goes through
// Edit.Remove instead.
func (h *Home) Uninstall(id string) Result {
	return h.Registry.Uninstall(id)
}

// Move applies the drop policy for id as if it had been dragged onto zone
// before target. It is the non-gesture path used by the CLI and tools.
func (h *Home) Move(id string, zone Zone, target string) DropOutcome {
	out := DropOutcome{Source: id, Target: target, Zone: zone}
	// Widget kinds share names with apps; the zone decides which is meant.
	if h.Widgets.Contains(id) && (zone == ZoneWidgets || !h.Registry.Has(id)) {
		out.Result = dropWidget(h.Widgets, id, zone, target)
		return out
	}
	if !h.Registry.Has(id) {
		out.Result = rejected(ReasonUnknownApp)
		return out
	}
	origin := ZoneMain
	if h.Dock.Contains(id) {
		origin = ZoneDock
	}
	out.Result = place(h.Registry, h.Dock, origin, id, zone, target)
	return out
}

// RemoveWidget drops a widget from the widget page while editing.
func (h *Home) RemoveWidget(kind string) Result {
	if !h.Edit.Editing() {
		return rejected(ReasonNotEditing)
	}
	return h.Widgets.Remove(kind)
}

// MainPage returns the entries on app page i.
func (h *Home) MainPage(i int) []apps.Entry {
	ids := Page(h.Registry.MainIDs(), i)
	out := make([]apps.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := h.Registry.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot is a read-only view of the layout.
type Snapshot struct {
	Main        []string `json:"main" yaml:"main"`
	Dock        []string `json:"dock" yaml:"dock"`
	Widgets     []string `json:"widgets" yaml:"widgets"`
	PageCount   int      `json:"pageCount" yaml:"pageCount"`
	Screen      int      `json:"screen" yaml:"screen"`
	ScreenCount int      `json:"screenCount" yaml:"screenCount"`
	Mode        string   `json:"mode" yaml:"mode"`
	Dragging    string   `json:"dragging,omitempty" yaml:"dragging,omitempty"`
}

func (h *Home) Snapshot() Snapshot {
	main := h.Registry.MainIDs()
	s := Snapshot{
		Main:        main,
		Dock:        h.Dock.IDs(),
		Widgets:     h.Widgets.Kinds(),
		PageCount:   PageCount(len(main)),
		Screen:      h.Pager.Screen(),
		ScreenCount: h.Pager.ScreenCount(),
		Mode:        h.Edit.Mode().String(),
	}
	if sess, ok := h.Drag.Session(); ok {
		s.Dragging = sess.SourceID
	}
	return s
}

var (
	ErrDuplicateApp    = errors.New("layout: duplicate app in registry")
	ErrDockOverflow    = errors.New("layout: dock over capacity")
	ErrDockOrphan      = errors.New("layout: docked app not installed")
	ErrDockDuplicate   = errors.New("layout: duplicate app in dock")
	ErrSystemAppAbsent = errors.New("layout: system app missing")
	ErrPartition       = errors.New("layout: app not in exactly one of main and dock")
)

// CheckInvariants verifies the structural rules of the layout.
func (h *Home) CheckInvariants() error {
	var errs []error

	ids := h.Registry.IDs()
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateApp, id))
		}
		seen[id] = true
	}

	dock := h.Dock.IDs()
	if len(dock) > MaxDock {
		errs = append(errs, fmt.Errorf("%w: %d", ErrDockOverflow, len(dock)))
	}
	inDock := map[string]bool{}
	for _, id := range dock {
		if inDock[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDockDuplicate, id))
		}
		inDock[id] = true
		if !seen[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDockOrphan, id))
		}
	}

	inMain := map[string]bool{}
	for _, id := range h.Registry.MainIDs() {
		inMain[id] = true
	}
	for _, id := range ids {
		if inMain[id] == inDock[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrPartition, id))
		}
	}

	for _, e := range h.catalog.DefaultInstalled() {
		if !e.Removable && !seen[e.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrSystemAppAbsent, e.ID))
		}
	}
	return errors.Join(errs...)
}

// Catalog returns the catalogue the layout was loaded with.
func (h *Home) Catalog() *apps.Catalog {
	return h.catalog
}
