package shell

import (
	"testing"

	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/store"
)

func TestGeometryCells(t *testing.T) {
	g := newGeometry(minWidth+10, phoneH)
	if g.left != 6 {
		t.Fatalf("expected phone centred at 6, got %d", g.left)
	}

	tests := []struct {
		i    int
		want layout.Rect
	}{
		{0, layout.Rect{X: 6, Y: rowGrid, W: cellW, H: cellH}},
		{3, layout.Rect{X: 6 + 3*cellW, Y: rowGrid, W: cellW, H: cellH}},
		{4, layout.Rect{X: 6, Y: rowGrid + cellH, W: cellW, H: cellH}},
		{23, layout.Rect{X: 6 + 3*cellW, Y: rowGrid + 5*cellH, W: cellW, H: cellH}},
	}
	for _, tt := range tests {
		if got := g.cell(tt.i); got != tt.want {
			t.Fatalf("cell(%d) = %+v, want %+v", tt.i, got, tt.want)
		}
	}
}

func TestDockIsCentred(t *testing.T) {
	g := newGeometry(minWidth, phoneH)
	first, last := g.dockCell(0, 2), g.dockCell(1, 2)
	if first.X-g.dock.X != g.dock.X+g.dock.W-(last.X+last.W) {
		t.Fatalf("dock not centred: %+v %+v in %+v", first, last, g.dock)
	}
}

func TestAtEdge(t *testing.T) {
	g := newGeometry(minWidth, phoneH)
	y := g.grid.Y + 1
	tests := []struct {
		pt   layout.Point
		want int
	}{
		{layout.Point{X: g.grid.X, Y: y}, -1},
		{layout.Point{X: g.grid.X + g.grid.W - 1, Y: y}, 1},
		{layout.Point{X: g.grid.X + g.grid.W/2, Y: y}, 0},
		{layout.Point{X: g.grid.X, Y: g.dock.Y}, 0},
	}
	for _, tt := range tests {
		if got := g.atEdge(tt.pt); got != tt.want {
			t.Fatalf("atEdge(%+v) = %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestRemoveHit(t *testing.T) {
	r := layout.Rect{X: 10, Y: 4, W: cellW, H: cellH}
	if !removeHit(r, layout.Point{X: 11, Y: 4}) {
		t.Fatalf("expected marker hit")
	}
	if removeHit(r, layout.Point{X: 12, Y: 4}) || removeHit(r, layout.Point{X: 10, Y: 5}) {
		t.Fatalf("only the marker should hit")
	}
}

func TestDraggedIconFlipsPageAtEdge(t *testing.T) {
	m := newTestModel(t, store.NewMemory())
	send(m, keyPress("e"))

	from := centre(t, m, "music")
	edge := layout.Point{X: m.geo.grid.X, Y: from.Y}
	send(m, click(from), motion(edge))
	if !m.svc.Home.Pager.OnWidgets() {
		t.Fatalf("dragging to the left edge should flip to the widget page")
	}
	// Staying at the edge does not keep flipping.
	send(m, motion(layout.Point{X: edge.X + 1, Y: edge.Y}))
	if m.svc.Home.Pager.Screen() != 0 {
		t.Fatalf("expected to stay on screen 0")
	}
	send(m, release(edge))
	if m.svc.Home.Drag.Dragging() {
		t.Fatalf("release should end the drag")
	}
}

func TestSchedulerFireAndCancel(t *testing.T) {
	s := newTickScheduler()
	fired := 0
	cancel := s.After(layout.LongPressDelay, func() { fired++ })
	s.After(layout.LongPressDelay, func() { fired += 10 })
	if s.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d", s.Pending())
	}
	if cmd := s.Drain(); cmd == nil {
		t.Fatalf("expected queued ticks")
	}
	if cmd := s.Drain(); cmd != nil {
		t.Fatalf("drain should empty the queue")
	}

	cancel()
	if s.Fire(1) {
		t.Fatalf("cancelled timer fired")
	}
	if !s.Fire(s.Last()) || fired != 10 {
		t.Fatalf("expected second timer to fire, fired=%d", fired)
	}
	if s.Fire(s.Last()) {
		t.Fatalf("timer fired twice")
	}
}
