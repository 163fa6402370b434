package chat

import (
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/tui/styles"
)

// Status represents the current chat status.
type Status int

// Status values.
const (
	StatusReady Status = iota
	StatusTranslating
	StatusRecording
	StatusSpeaking
	StatusError
	StatusInfo
)

// StatusBar displays the current chat status plus the target language.
type StatusBar struct {
	status   Status
	detail   string
	language string
	width    int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		status: StatusReady,
	}
}

// SetStatus sets the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.status = status
	if status == StatusReady {
		s.detail = ""
	}
}

// SetError sets an error message.
func (s *StatusBar) SetError(msg string) {
	s.status = StatusError
	s.detail = msg
}

// SetInfo sets a transient informational message.
func (s *StatusBar) SetInfo(msg string) {
	s.status = StatusInfo
	s.detail = msg
}

// SetLanguage sets the target language shown on the right.
func (s *StatusBar) SetLanguage(name string) {
	s.language = name
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := styles.CurrentTheme()

	var statusText string
	var statusStyle lipgloss.Style

	switch s.status {
	case StatusReady:
		statusText = "Ready"
		statusStyle = t.S().Success
	case StatusTranslating:
		statusText = "Translating..."
		statusStyle = t.S().Info
	case StatusRecording:
		statusText = "● Recording... press ctrl+t to stop"
		statusStyle = t.S().Error
	case StatusSpeaking:
		statusText = "Speaking..."
		statusStyle = t.S().Info
	case StatusError:
		statusText = "Error: " + s.detail
		statusStyle = t.S().Error
	case StatusInfo:
		statusText = s.detail
		statusStyle = t.S().Info
	}

	barStyle := lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BgSubtle)

	right := t.S().Muted.Render("→ " + s.language + "  •  ctrl+k help")

	left := statusStyle.Render(statusText)

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return barStyle.Render(content)
}
