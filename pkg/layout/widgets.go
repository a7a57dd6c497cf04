package layout

import "tableflip.dev/phoneshell/pkg/store"

// Widget kinds shown on screen 0.
const (
	WidgetClock = "clock"
	WidgetMusic = "music"
)

// WidgetKinds lists every widget the shell can render.
func WidgetKinds() []string {
	return []string{WidgetClock, WidgetMusic}
}

// DefaultWidgets is the widget page of a fresh phone.
func DefaultWidgets() []string {
	return WidgetKinds()
}

func knownWidget(kind string) bool {
	return indexOf(WidgetKinds(), kind) >= 0
}

// Widgets is the ordered set of widgets on the widget page.
type Widgets struct {
	kinds []string
	p     *persister
}

func newWidgets(kinds []string, p *persister) *Widgets {
	return &Widgets{kinds: dedupe(kinds, knownWidget), p: p}
}

func (w *Widgets) Kinds() []string {
	return append([]string{}, w.kinds...)
}

func (w *Widgets) Contains(kind string) bool {
	return indexOf(w.kinds, kind) >= 0
}

// Add appends kind when it is known and not already shown.
func (w *Widgets) Add(kind string) Result {
	switch {
	case !knownWidget(kind):
		return rejected(ReasonUnknownWidget)
	case w.Contains(kind):
		return rejected(ReasonInstalled)
	}
	w.kinds = append(w.kinds, kind)
	w.save()
	return applied()
}

func (w *Widgets) Remove(kind string) Result {
	i := indexOf(w.kinds, kind)
	if i < 0 {
		return rejected(ReasonUnknownWidget)
	}
	w.kinds = removeAt(w.kinds, i)
	w.save()
	return applied()
}

// Reorder moves kind before target, or last when target is empty.
func (w *Widgets) Reorder(kind, target string) Result {
	if kind == target {
		return rejected(ReasonSameTarget)
	}
	i := indexOf(w.kinds, kind)
	if i < 0 {
		return rejected(ReasonUnknownWidget)
	}
	if target != "" && !w.Contains(target) {
		return rejected(ReasonUnknownTarget)
	}
	w.kinds = insertBefore(removeAt(w.kinds, i), kind, target)
	w.save()
	return applied()
}

func (w *Widgets) save() {
	w.p.saveIDs(store.KeyWidgets, w.kinds)
}
