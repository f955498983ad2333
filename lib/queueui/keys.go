// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the client. Form views route
// printable characters to their inputs, so everything reachable from a
// form uses a control chord or a key the inputs never consume.
type KeyMap struct {
	Quit      key.Binding
	Back      key.Binding
	Submit    key.Binding
	NextField key.Binding
	StaffArea key.Binding
	SwitchTo  key.Binding

	// Staff dashboard actions.
	CallNext        key.Binding
	Complete        key.Binding
	SwitchQueue     key.Binding
	PeriodMorning   key.Binding
	PeriodAfternoon key.Binding
	PeriodEvening   key.Binding
	SignOut         key.Binding
}

// DefaultKeyMap is the standard binding set.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "home"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	StaffArea: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "staff area"),
	),
	SwitchTo: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "switch sign in/sign up"),
	),

	CallNext: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "call next"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	SwitchQueue: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "switch queue"),
	),
	PeriodMorning: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "morning traffic"),
	),
	PeriodAfternoon: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "afternoon traffic"),
	),
	PeriodEvening: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "evening traffic"),
	),
	SignOut: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sign out"),
	),
}
