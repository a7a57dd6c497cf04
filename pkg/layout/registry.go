package layout

import (
	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/store"
)

// Entry is an installed app.
type Entry = apps.Entry

// Registry is the ordered set of installed apps. Main-screen order is the
// registry order with docked apps skipped.
type Registry struct {
	entries []apps.Entry
	dock    *Dock
	p       *persister
}

func newRegistry(entries []apps.Entry, p *persister) *Registry {
	return &Registry{entries: append([]apps.Entry{}, entries...), p: p}
}

// Entries returns every installed app in registry order.
func (r *Registry) Entries() []apps.Entry {
	return append([]apps.Entry{}, r.entries...)
}

// IDs returns every installed app id in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

func (r *Registry) Get(id string) (apps.Entry, bool) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, true
		}
	}
	return apps.Entry{}, false
}

// Main returns the installed apps not in the dock, in registry order.
func (r *Registry) Main() []apps.Entry {
	out := make([]apps.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if r.dock != nil && r.dock.Contains(e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MainIDs is Main reduced to ids.
func (r *Registry) MainIDs() []string {
	main := r.Main()
	ids := make([]string, len(main))
	for i, e := range main {
		ids[i] = e.ID
	}
	return ids
}

// ReorderMain moves source so it sits immediately before target. An empty
// target moves source to the end.
func (r *Registry) ReorderMain(source, target string) Result {
	if source == target {
		return rejected(ReasonSameTarget)
	}
	ids := r.IDs()
	from := indexOf(ids, source)
	if from < 0 {
		return rejected(ReasonUnknownApp)
	}
	if target != "" && indexOf(ids, target) < 0 {
		return rejected(ReasonUnknownTarget)
	}

	moved := r.entries[from]
	rest := make([]apps.Entry, 0, len(r.entries))
	rest = append(rest, r.entries[:from]...)
	rest = append(rest, r.entries[from+1:]...)

	at := len(rest)
	if target != "" {
		for i, e := range rest {
			if e.ID == target {
				at = i
				break
			}
		}
	}
	next := make([]apps.Entry, 0, len(r.entries))
	next = append(next, rest[:at]...)
	next = append(next, moved)
	next = append(next, rest[at:]...)

	r.entries = next
	r.save()
	return applied()
}

// Install appends e unless an app with the same id is already present.
func (r *Registry) Install(e apps.Entry) Result {
	if e.ID == "" {
		return rejected(ReasonUnknownApp)
	}
	if r.Has(e.ID) {
		return rejected(ReasonInstalled)
	}
	e.NotificationCount = 0
	r.entries = append(r.entries, e)
	r.save()
	return applied()
}

// Uninstall removes a removable app and drops it from the dock in the same
// step. System apps are refused.
func (r *Registry) Uninstall(id string) Result {
	idx := -1
	for i, e := range r.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rejected(ReasonUnknownApp)
	}
	if !r.entries[idx].Removable {
		return rejected(ReasonNotRemovable)
	}

	next := make([]apps.Entry, 0, len(r.entries)-1)
	next = append(next, r.entries[:idx]...)
	r.entries = append(next, r.entries[idx+1:]...)
	if r.dock != nil {
		r.dock.MoveOut(id)
	}
	r.save()
	return applied()
}

func (r *Registry) save() {
	r.p.saveIDs(store.KeyAppOrder, r.IDs())
}
