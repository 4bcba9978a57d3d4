package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	toggle  key.Binding
	ranged  key.Binding
	grab    key.Binding
	marker  key.Binding
	remove  key.Binding
	clear   key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),
		ranged:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select range")),
		grab:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab")),
		marker:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle marker")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove selected")),
		clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.toggle, k.ranged, k.grab, k.marker},
		{k.remove, k.clear, k.restart, k.quit},
	}
}
