// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replayui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the replay browser.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Open the selected record.
	Open key.Binding

	// Playback.
	StepBack    key.Binding
	StepForward key.Binding
	Start       key.Binding
	End         key.Binding
	Autoplay    key.Binding
	Back        key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	StepBack: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "back"),
	),
	StepForward: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "forward"),
	),
	Start: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "start"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "end"),
	),
	Autoplay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "autoplay"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("Esc", "back to list"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
