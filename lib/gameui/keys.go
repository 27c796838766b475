// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the play screen.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Drop  key.Binding

	// Column digits drop directly into a column.
	Column key.Binding

	Undo       key.Binding
	NewGame    key.Binding
	SaveReplay key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style h/l
// alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "move right"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "drop"),
	),
	Column: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
		key.WithHelp("1-7", "drop in column"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new game"),
	),
	SaveReplay: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save replay"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
