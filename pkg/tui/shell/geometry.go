package shell

import (
	"tableflip.dev/phoneshell/pkg/layout"
)

const (
	cellW = 10
	cellH = 3

	gridW = layout.Columns * cellW
	gridH = layout.Rows * cellH

	// widgetH is the height of one widget card; cards are one row apart.
	widgetH = 5

	// edgeW is how close to the screen edge a dragged icon must get to flip
	// the page.
	edgeW = 2

	minWidth = gridW + 2
)

// Rows of the phone, top to bottom.
const (
	rowStatus = 0
	rowGrid   = 2
	rowDots   = rowGrid + gridH
	rowRule   = rowDots + 1
	rowDock   = rowRule + 1
	rowHome   = rowDock + cellH
	rowHelp   = rowHome + 1

	phoneH = rowHelp + 1
)

// geometry places the phone inside the terminal. Rendering and the arena
// both read it, so what is drawn is what is hit.
type geometry struct {
	width, height int
	left          int

	status layout.Rect
	done   layout.Rect
	grid   layout.Rect
	dock   layout.Rect
	home   layout.Rect
}

func newGeometry(width, height int) geometry {
	left := (width - gridW) / 2
	if left < 1 {
		left = 1
	}
	g := geometry{width: width, height: height, left: left}
	g.status = layout.Rect{X: left, Y: rowStatus, W: gridW, H: 1}
	g.done = layout.Rect{X: left + gridW - doneW, Y: rowStatus, W: doneW, H: 1}
	g.grid = layout.Rect{X: left, Y: rowGrid, W: gridW, H: gridH}
	g.dock = layout.Rect{X: left, Y: rowDock, W: gridW, H: cellH}
	g.home = layout.Rect{X: left + (gridW-homeW)/2, Y: rowHome, W: homeW, H: 1}
	return g
}

const (
	doneW = 8
	homeW = 7
)

// cell is the rectangle of slot i on an app page.
func (g geometry) cell(i int) layout.Rect {
	col, row := i%layout.Columns, i/layout.Columns
	return layout.Rect{X: g.grid.X + col*cellW, Y: g.grid.Y + row*cellH, W: cellW, H: cellH}
}

// dockCell is the rectangle of slot i when n apps are docked. The dock is
// centred like the real thing.
func (g geometry) dockCell(i, n int) layout.Rect {
	start := g.dock.X + (gridW-n*cellW)/2
	return layout.Rect{X: start + i*cellW, Y: g.dock.Y, W: cellW, H: cellH}
}

func (g geometry) widgetCard(i int) layout.Rect {
	return layout.Rect{X: g.grid.X, Y: g.grid.Y + i*(widgetH+1), W: gridW, H: widgetH}
}

// removeHit reports whether pt is on the remove marker of the icon in r.
func removeHit(r layout.Rect, pt layout.Point) bool {
	return pt.Y == r.Y && (pt.X == r.X || pt.X == r.X+1)
}

// atEdge returns -1 or 1 when pt is close to the left or right edge of the
// grid, and 0 otherwise.
func (g geometry) atEdge(pt layout.Point) int {
	if pt.Y < g.grid.Y || pt.Y >= g.grid.Y+g.grid.H {
		return 0
	}
	switch {
	case pt.X < g.grid.X+edgeW:
		return -1
	case pt.X >= g.grid.X+g.grid.W-edgeW:
		return 1
	}
	return 0
}

// placeArena records every zone and item on the visible screen.
func placeArena(a *layout.Arena, g geometry, h *layout.Home) {
	a.Reset()
	if h.Pager.OnWidgets() {
		a.Place(layout.Placement{Rect: g.grid, Zone: layout.ZoneWidgets})
		for i, kind := range h.Widgets.Kinds() {
			a.Place(layout.Placement{Rect: g.widgetCard(i), Zone: layout.ZoneWidgets, ItemID: kind, Layer: 1})
		}
	} else {
		a.Place(layout.Placement{Rect: g.grid, Zone: layout.ZoneMain})
		for i, id := range layout.Page(h.Registry.MainIDs(), h.Pager.AppPage()) {
			a.Place(layout.Placement{Rect: g.cell(i), Zone: layout.ZoneMain, ItemID: id, Layer: 1})
		}
	}
	a.Place(layout.Placement{Rect: g.dock, Zone: layout.ZoneDock})
	dock := h.Dock.IDs()
	for i, id := range dock {
		a.Place(layout.Placement{Rect: g.dockCell(i, len(dock)), Zone: layout.ZoneDock, ItemID: id, Layer: 1})
	}
}
