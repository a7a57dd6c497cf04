package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Rect is where Compose put the foreground, in cells.
type Rect struct {
	X, Y, W, H int
}

// Compose draws foreground over background. Background text beside the
// overlay is kept but loses its styling, so the sheet reads as the top layer.
func Compose(background string, width, height int, foreground string, placement Placement) (string, Rect) {
	bgLines := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n"), Rect{}
	}

	fgLines := strings.Split(foreground, "\n")
	w := 0
	for _, line := range fgLines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	w = min(w, width)
	h := min(len(fgLines), height)
	x, y := offsets(width, height, w, h, placement)

	for row := 0; row < h; row++ {
		plain := ansi.Strip(bgLines[y+row])
		prefix := cut(plain, 0, x)
		suffix := cut(plain, x+w, width)
		bgLines[y+row] = prefix + pad(ansi.Truncate(fgLines[row], w, ""), w) + suffix
	}
	return strings.Join(bgLines, "\n"), Rect{X: x, Y: y, W: w, H: h}
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(ansi.Truncate(lines[i], width, ""), width)
	}
	return lines
}

func pad(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// cut returns the columns [start, end) of an unstyled line.
func cut(s string, start, end int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		rw := ansi.StringWidth(string(r))
		if col >= start && col+rw <= end {
			b.WriteRune(r)
		}
		col += rw
		if col >= end {
			break
		}
	}
	return b.String()
}

func offsets(width, height, w, h int, placement Placement) (int, int) {
	x := placement.MarginX
	switch placement.Horizontal {
	case lipgloss.Right:
		x = width - w - placement.MarginX
	case lipgloss.Center:
		x = (width - w) / 2
	}
	y := placement.MarginY
	switch placement.Vertical {
	case lipgloss.Bottom:
		y = height - h - placement.MarginY
	case lipgloss.Center:
		y = (height - h) / 2
	}
	return clamp(x, 0, width-w), clamp(y, 0, height-h)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
