// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the client. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Accent marks the ticket number, the active queue name, and other
	// load-bearing values.
	Accent lipgloss.Color

	// Status colors.
	Waiting     lipgloss.Color
	BeingServed lipgloss.Color

	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// UI chrome.
	HeaderForeground   lipgloss.Color
	BorderColor        lipgloss.Color
	HelpText           lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
}

// DefaultTheme is the standard palette.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	Accent: lipgloss.Color("81"),

	Waiting:     lipgloss.Color("220"),
	BeingServed: lipgloss.Color("82"),

	ErrorText:   lipgloss.Color("203"),
	SuccessText: lipgloss.Color("82"),

	HeaderForeground:   lipgloss.Color("231"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("231"),
}

// StatusColor returns the color for a server-reported ticket status
// string. Unknown statuses render as normal text.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "WAITING":
		return theme.Waiting
	case "BEING_SERVED":
		return theme.BeingServed
	}
	return theme.NormalText
}
