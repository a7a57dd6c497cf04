package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
)

type keyMap struct {
	Left, Right, Up, Down key.Binding
	PrevPage, NextPage    key.Binding
	Open                  key.Binding
	Edit                  key.Binding
	Pick                  key.Binding
	DropEnd               key.Binding
	Remove                key.Binding
	Home                  key.Binding
	Store                 key.Binding
	Panel                 key.Binding
	Theme                 key.Binding
	Airplane              key.Binding
	Clear                 key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→↑↓", "focus")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PrevPage: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[ ]", "page")),
		NextPage: key.NewBinding(key.WithKeys("]", "pgdown")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Pick:     key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "pick up/drop")),
		DropEnd:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "drop last")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove")),
		Home:     key.NewBinding(key.WithKeys("esc", "home"), key.WithHelp("esc", "home")),
		Store:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "store")),
		Panel:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "panel")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Airplane: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "airplane")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help renders the short help for the bindings that apply right now.
func help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
