package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestComposeCentersForeground(t *testing.T) {
	bg := strings.Join([]string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}, "\n")
	out, r := Compose(bg, 10, 3, "XX", Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "bbbbXXbbbb" {
		t.Fatalf("middle line = %q", lines[1])
	}
	if r != (Rect{X: 4, Y: 1, W: 2, H: 1}) {
		t.Fatalf("rect = %+v", r)
	}
}

func TestComposeBottomWithMargin(t *testing.T) {
	out, r := Compose("", 6, 4, "ab\ncd", Placement{Horizontal: lipgloss.Left, Vertical: lipgloss.Bottom, MarginX: 1})
	lines := strings.Split(out, "\n")
	if lines[2] != " ab   " || lines[3] != " cd   " {
		t.Fatalf("unexpected output %q", lines)
	}
	if r.Y != 2 || r.X != 1 {
		t.Fatalf("rect = %+v", r)
	}
}

func TestComposeStripsStyledBackground(t *testing.T) {
	bg := lipgloss.NewStyle().Bold(true).Render("hello")
	out, _ := Compose(bg, 5, 1, "", Placement{})
	if !strings.Contains(out, "hello") {
		t.Fatalf("background lost: %q", out)
	}
	out, _ = Compose(bg, 5, 1, "X", Placement{Horizontal: lipgloss.Right})
	if out != "hellX" {
		t.Fatalf("overlay = %q", out)
	}
}
