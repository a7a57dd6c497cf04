package layout

// Zone is a drop region on the home screen.
type Zone string

const (
	ZoneNone    Zone = ""
	ZoneMain    Zone = "main"
	ZoneDock    Zone = "dock"
	ZoneWidgets Zone = "widgets"
)

// ParseZone accepts the zone names used by the CLI and tools.
func ParseZone(s string) (Zone, bool) {
	switch Zone(s) {
	case ZoneMain, ZoneDock, ZoneWidgets:
		return Zone(s), true
	}
	return ZoneNone, false
}

type Point struct {
	X, Y int
}

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Placement is one rectangle drawn on screen. A placement with an empty
// ItemID marks a zone; otherwise it is an icon or widget inside Zone.
type Placement struct {
	Rect   Rect
	Zone   Zone
	ItemID string
	Layer  int
}

// Arena holds the placements of the last render and answers "what is under
// this point".
type Arena struct {
	placements []Placement
}

func (a *Arena) Reset() {
	a.placements = a.placements[:0]
}

func (a *Arena) Place(p Placement) {
	a.placements = append(a.placements, p)
}

func (a *Arena) Placements() []Placement {
	return append([]Placement{}, a.placements...)
}

// Hit returns the zone enclosing pt and the item under it, if any. The
// topmost placement wins; equal layers favour the later placement.
func (a *Arena) Hit(pt Point) (Zone, string) {
	var (
		item     *Placement
		zone     *Placement
		itemRank = -1
		zoneRank = -1
	)
	for i := range a.placements {
		p := &a.placements[i]
		if !p.Rect.Contains(pt) {
			continue
		}
		if p.ItemID != "" {
			if item == nil || p.Layer >= itemRank {
				item, itemRank = p, p.Layer
			}
			continue
		}
		if zone == nil || p.Layer >= zoneRank {
			zone, zoneRank = p, p.Layer
		}
	}
	switch {
	case item != nil:
		return item.Zone, item.ItemID
	case zone != nil:
		return zone.Zone, ""
	default:
		return ZoneNone, ""
	}
}

// Locate returns the rectangle of the item placement with id.
func (a *Arena) Locate(id string) (Rect, bool) {
	for i := len(a.placements) - 1; i >= 0; i-- {
		if a.placements[i].ItemID == id {
			return a.placements[i].Rect, true
		}
	}
	return Rect{}, false
}
