package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the viewer keybindings. Line and page scrolling are handled
// by the viewport's own keymap.
type keyMap struct {
	Quit         key.Binding
	Help         key.Binding
	NextFailure  key.Binding
	PrevFailure  key.Binding
	ScrollTop    key.Binding
	ScrollBottom key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextFailure: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next failure"),
		),
		PrevFailure: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev failure"),
		),
		ScrollTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		ScrollBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// ShortHelp returns bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFailure, k.PrevFailure, k.ScrollTop, k.ScrollBottom, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.ScrollTop, k.ScrollBottom, k.NextFailure, k.PrevFailure},
		{k.Help, k.Quit},
	}
}
