package layout

import "math"

// Grid geometry of one app page.
const (
	Columns      = 4
	Rows         = 6
	PageCapacity = Columns * Rows

	// SwipeGain scales pointer travel into scroll offset.
	SwipeGain = 2
)

// PageCount is the number of app pages needed for n main-screen icons. There
// is always at least one, even when empty.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageCapacity - 1) / PageCapacity
}

// Page returns the ids shown on app page i (0-based, excluding the widget
// screen).
func Page(ids []string, i int) []string {
	if i < 0 {
		return nil
	}
	start := i * PageCapacity
	if start >= len(ids) {
		return nil
	}
	end := start + PageCapacity
	if end > len(ids) {
		end = len(ids)
	}
	return append([]string{}, ids[start:end]...)
}

// PageOf returns the app page holding id, or -1.
func PageOf(ids []string, id string) int {
	i := indexOf(ids, id)
	if i < 0 {
		return -1
	}
	return i / PageCapacity
}

// ScreenForPage maps an app page to its screen index. Screen 0 is the widget
// page.
func ScreenForPage(page int) int {
	return page + 1
}

// Pager tracks the visible screen and the in-flight swipe gesture.
type Pager struct {
	count  func() int
	screen int
	width  int

	swiping     bool
	startX      int
	startOffset int
	offset      int
}

// NewPager builds a Pager; count reports the current number of main-screen
// icons.
func NewPager(count func() int) *Pager {
	return &Pager{count: count, screen: 1}
}

// ScreenCount is the widget screen plus every app page.
func (p *Pager) ScreenCount() int {
	return 1 + PageCount(p.count())
}

// Screen returns the current screen, clamped to the screens that exist now.
func (p *Pager) Screen() int {
	return p.clamp(p.screen)
}

// OnWidgets reports whether the widget page is showing.
func (p *Pager) OnWidgets() bool {
	return p.Screen() == 0
}

// AppPage returns the app page index of the current screen, or -1 on the
// widget page.
func (p *Pager) AppPage() int {
	return p.Screen() - 1
}

func (p *Pager) SetScreen(i int) {
	p.screen = p.clamp(i)
	p.offset = p.screen * p.width
}

func (p *Pager) Next() {
	p.SetScreen(p.Screen() + 1)
}

func (p *Pager) Prev() {
	p.SetScreen(p.Screen() - 1)
}

// SetWidth records the width of one screen in pointer units.
func (p *Pager) SetWidth(w int) {
	if w < 0 {
		w = 0
	}
	p.width = w
	p.offset = p.Screen() * w
}

func (p *Pager) Width() int {
	return p.width
}

// Swiping reports whether a swipe gesture is in progress.
func (p *Pager) Swiping() bool {
	return p.swiping
}

// Offset is the current horizontal scroll offset.
func (p *Pager) Offset() int {
	return p.offset
}

func (p *Pager) SwipeBegin(x int) {
	p.swiping = true
	p.startX = x
	p.startOffset = p.Screen() * p.width
	p.offset = p.startOffset
}

func (p *Pager) SwipeMove(x int) {
	if !p.swiping {
		return
	}
	off := p.startOffset - (x-p.startX)*SwipeGain
	limit := (p.ScreenCount() - 1) * p.width
	switch {
	case off < 0:
		off = 0
	case off > limit:
		off = limit
	}
	p.offset = off
}

// SwipeEnd snaps to the nearest screen and returns it.
func (p *Pager) SwipeEnd() int {
	if !p.swiping {
		return p.Screen()
	}
	p.swiping = false
	if p.width > 0 {
		p.screen = p.clamp(int(math.Round(float64(p.offset) / float64(p.width))))
	}
	p.offset = p.screen * p.width
	return p.screen
}

func (p *Pager) clamp(i int) int {
	last := p.ScreenCount() - 1
	switch {
	case i < 0:
		return 0
	case i > last:
		return last
	default:
		return i
	}
}
