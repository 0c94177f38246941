package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	playPause key.Binding
	next     key.Binding
	previous key.Binding
	complete key.Binding
	skip     key.Binding
	note     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		playPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next lesson")),
		previous:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous lesson")),
		complete:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark complete")),
		skip:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		note:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add note")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.playPause, k.next, k.previous},
		{k.complete, k.skip, k.note, k.quit},
	}
}
