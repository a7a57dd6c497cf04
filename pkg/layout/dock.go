package layout

import "tableflip.dev/phoneshell/pkg/store"

// MaxDock is the dock capacity.
const MaxDock = 4

// Dock is the ordered, bounded set of pinned app ids.
type Dock struct {
	ids []string
	reg *Registry
	p   *persister
}

func newDock(ids []string, reg *Registry, p *persister) *Dock {
	d := &Dock{reg: reg, p: p}
	d.ids = dedupe(ids, reg.Has)
	if len(d.ids) > MaxDock {
		d.ids = d.ids[:MaxDock]
	}
	reg.dock = d
	return d
}

func (d *Dock) IDs() []string {
	return append([]string{}, d.ids...)
}

func (d *Dock) Len() int {
	return len(d.ids)
}

func (d *Dock) Full() bool {
	return len(d.ids) >= MaxDock
}

func (d *Dock) Contains(id string) bool {
	return indexOf(d.ids, id) >= 0
}

// Entries resolves the docked ids against the registry.
func (d *Dock) Entries() []Entry {
	out := make([]Entry, 0, len(d.ids))
	for _, id := range d.ids {
		if e, ok := d.reg.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// MoveIn docks id before target, or at the end when target is empty or not
// docked.
func (d *Dock) MoveIn(id, target string) Result {
	switch {
	case !d.reg.Has(id):
		return rejected(ReasonUnknownApp)
	case d.Contains(id):
		return rejected(ReasonAlreadyDocked)
	case d.Full():
		return rejected(ReasonDockFull)
	}
	d.ids = insertBefore(d.ids, id, target)
	d.save()
	return applied()
}

// MoveOut undocks id.
func (d *Dock) MoveOut(id string) Result {
	i := indexOf(d.ids, id)
	if i < 0 {
		return rejected(ReasonNotDocked)
	}
	d.ids = removeAt(d.ids, i)
	d.save()
	return applied()
}

// Reorder moves a docked id before target; an empty target moves it last.
func (d *Dock) Reorder(id, target string) Result {
	if id == target {
		return rejected(ReasonSameTarget)
	}
	i := indexOf(d.ids, id)
	if i < 0 {
		return rejected(ReasonNotDocked)
	}
	if target != "" && !d.Contains(target) {
		return rejected(ReasonUnknownTarget)
	}
	d.ids = insertBefore(removeAt(d.ids, i), id, target)
	d.save()
	return applied()
}

func (d *Dock) save() {
	d.p.saveIDs(store.KeyDockOrder, d.ids)
}
