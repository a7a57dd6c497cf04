package layout

// ItemKind distinguishes the two draggable things.
type ItemKind string

const (
	KindApp    ItemKind = "app"
	KindWidget ItemKind = "widget"
)

// Session is an in-flight drag.
type Session struct {
	SourceID string   `json:"sourceId" yaml:"sourceId"`
	Kind     ItemKind `json:"kind" yaml:"kind"`
	Origin   Zone     `json:"origin" yaml:"origin"`
}

// DropOutcome records what a drop did.
type DropOutcome struct {
	Result
	Source string `json:"source" yaml:"source"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Zone   Zone   `json:"zone,omitempty" yaml:"zone,omitempty"`
}

// DragDrop is the Idle/Dragging state machine. Drops are resolved against
// an Arena and applied with the placement policy.
type DragDrop struct {
	reg     *Registry
	dock    *Dock
	widgets *Widgets
	edit    *EditMode
	arena   *Arena

	session *Session
}

// Session returns the active drag, if any.
func (d *DragDrop) Session() (Session, bool) {
	if d.session == nil {
		return Session{}, false
	}
	return *d.session, true
}

func (d *DragDrop) Dragging() bool {
	return d.session != nil
}

// BeginDrag starts dragging id. It is refused outside edit mode, while
// another drag is active, or for unknown items.
func (d *DragDrop) BeginDrag(id string, kind ItemKind) Result {
	switch {
	case !d.edit.Editing():
		return rejected(ReasonNotEditing)
	case d.session != nil:
		return rejected(ReasonDragActive)
	}

	s := &Session{SourceID: id, Kind: kind}
	switch kind {
	case KindApp:
		if !d.reg.Has(id) {
			return rejected(ReasonUnknownApp)
		}
		s.Origin = ZoneMain
		if d.dock.Contains(id) {
			s.Origin = ZoneDock
		}
	case KindWidget:
		if !d.widgets.Contains(id) {
			return rejected(ReasonUnknownWidget)
		}
		s.Origin = ZoneWidgets
	default:
		return rejected(ReasonWrongZone)
	}
	d.session = s
	return applied()
}

// ResolveDrop hit-tests pt and applies the drop there.
func (d *DragDrop) ResolveDrop(pt Point) DropOutcome {
	zone, target := d.arena.Hit(pt)
	return d.Drop(zone, target)
}

// Drop applies the active session onto zone, before target. The session
// stays open until EndDrag.
func (d *DragDrop) Drop(zone Zone, target string) DropOutcome {
	if d.session == nil {
		return DropOutcome{Result: rejected(ReasonNoSession), Zone: zone, Target: target}
	}
	s := *d.session
	out := DropOutcome{Source: s.SourceID, Target: target, Zone: zone}
	if s.Kind == KindWidget {
		out.Result = dropWidget(d.widgets, s.SourceID, zone, target)
		return out
	}
	out.Result = place(d.reg, d.dock, s.Origin, s.SourceID, zone, target)
	return out
}

// EndDrag clears the session unconditionally.
func (d *DragDrop) EndDrag() {
	d.session = nil
}

func dropWidget(w *Widgets, source string, zone Zone, target string) Result {
	if zone == ZoneNone {
		return rejected(ReasonNoZone)
	}
	if zone != ZoneWidgets {
		return rejected(ReasonWrongZone)
	}
	return w.Reorder(source, target)
}

// place is the app drop policy:
//
//	main -> main  reorder the registry
//	dock -> main  undock, then reorder when a target is given
//	dock -> dock  reorder the dock
//	main -> dock  dock before target, subject to capacity
func place(reg *Registry, dock *Dock, origin Zone, source string, zone Zone, target string) Result {
	if source == target {
		return rejected(ReasonSameTarget)
	}
	switch {
	case zone == ZoneNone:
		return rejected(ReasonNoZone)
	case origin == ZoneMain && zone == ZoneMain:
		return reg.ReorderMain(source, target)
	case origin == ZoneDock && zone == ZoneMain:
		res := dock.MoveOut(source)
		if res.Applied && target != "" {
			// The undock stands even if the target vanished.
			reg.ReorderMain(source, target)
		}
		return res
	case origin == ZoneDock && zone == ZoneDock:
		return dock.Reorder(source, target)
	case origin == ZoneMain && zone == ZoneDock:
		return dock.MoveIn(source, target)
	default:
		return rejected(ReasonWrongZone)
	}
}
