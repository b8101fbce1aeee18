// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "github.com/charmbracelet/lipgloss"

const (
	colorHighlight = lipgloss.Color("81")  // teal
	colorSpecial   = lipgloss.Color("208") // orange
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorSubtle    = lipgloss.Color("240")
)

var (
	headerStyle   = lipgloss.NewStyle().Underline(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle  = lipgloss.NewStyle().Foreground(colorSpecial)
)
