// Package panel renders the framed sheets that slide over the home screen.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/phoneshell/pkg/tui/theme"
)

// Model is a titled frame with body lines and an optional hint row.
type Model struct {
	title string
	lines []string
	hint  string
	width int

	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	hintStyle  lipgloss.Style
}

func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
		hintStyle:  th.Faint,
	}
}

// SetContent replaces the title and body.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

func (m *Model) SetHint(hint string) {
	m.hint = hint
}

// SetWidth fixes the outer width; lines longer than the inside are cut.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// View returns the rendered panel and its height in lines.
func (m Model) View() (string, int) {
	inner := 0
	if m.width > 0 {
		inner = m.width - m.frameStyle.GetHorizontalFrameSize()
	}
	fit := func(s string) string {
		if inner <= 0 {
			return s
		}
		return truncate.StringWithTail(s, uint(inner), "…")
	}

	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(fit(m.title)))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(fit(line)))
	}
	if m.hint != "" {
		content = append(content, "", m.hintStyle.Render(fit(m.hint)))
	}
	frame := m.frameStyle
	if inner > 0 {
		frame = frame.Width(m.width)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
