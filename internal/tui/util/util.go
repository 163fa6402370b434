// Package util provides shared helpers for TUI components.
package util

import tea "charm.land/bubbletea/v2"

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReportError returns a command that surfaces an error in the UI.
func ReportError(err error) tea.Cmd {
	return CmdHandler(ErrorMsg{Err: err})
}
