// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings of the terminal browser.
type KeyMap struct {
	// Section tabs.
	NextSection key.Binding
	PrevSection key.Binding
	Theory      key.Binding
	Setup       key.Binding
	CRUD        key.Binding
	Advanced    key.Binding

	// Snippet focus and copy.
	NextSnippet key.Binding
	PrevSnippet key.Binding
	Copy        key.Binding

	// Scrolling.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style keys sit
// alongside arrows, and 1-4 jump straight to a tab.
var DefaultKeyMap = KeyMap{
	NextSection: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next tab"),
	),
	PrevSection: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev tab"),
	),
	Theory: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "theory"),
	),
	Setup: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "setup"),
	),
	CRUD: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "crud"),
	),
	Advanced: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "advanced"),
	),
	NextSnippet: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n", "next snippet"),
	),
	PrevSnippet: key.NewBinding(
		key.WithKeys("N", "shift+tab"),
		key.WithHelp("N", "prev snippet"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c", "copy"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.NextSnippet, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSection, k.PrevSection, k.Theory, k.Setup, k.CRUD, k.Advanced},
		{k.NextSnippet, k.PrevSnippet, k.Copy},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}
