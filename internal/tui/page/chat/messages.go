package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/message"
	"github.com/quadra/translator/internal/tui/styles"
)

// MessageList displays the conversation messages.
type MessageList struct {
	messages []message.Message
	width    int
	height   int
	offset   int // lines scrolled up from the bottom
}

// NewMessageList creates a new message list component.
func NewMessageList() *MessageList {
	return &MessageList{}
}

// SetMessages sets the messages to display.
func (m *MessageList) SetMessages(messages []message.Message) {
	m.messages = messages
	m.offset = 0
}

// LastTranslation returns the most recent assistant message carrying a
// translation, if any.
func (m *MessageList) LastTranslation() (message.Message, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		if !msg.IsUser && msg.Translated && !msg.IsError() {
			return msg, true
		}
	}
	return message.Message{}, false
}

// SetSize sets the component size.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ScrollUp scrolls the message list up.
func (m *MessageList) ScrollUp() {
	m.offset++
}

// ScrollDown scrolls the message list down.
func (m *MessageList) ScrollDown() {
	if m.offset > 0 {
		m.offset--
	}
}

// View renders the message list, keeping the latest messages visible.
func (m *MessageList) View() string {
	t := styles.CurrentTheme()

	if len(m.messages) == 0 {
		empty := t.S().Muted.Render("No messages yet. Type something to translate.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	var rendered []string
	for _, msg := range m.messages {
		rendered = append(rendered, m.renderMessage(msg))
	}

	content := strings.Join(rendered, "\n\n")

	// Clip to the viewport, anchored at the bottom.
	lines := strings.Split(content, "\n")
	if len(lines) > m.height && m.height > 0 {
		maxOffset := len(lines) - m.height
		if m.offset > maxOffset {
			m.offset = maxOffset
		}
		end := len(lines) - m.offset
		lines = lines[end-m.height : end]
		content = strings.Join(lines, "\n")
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1)

	return containerStyle.Render(content)
}

func (m *MessageList) renderMessage(msg message.Message) string {
	contentWidth := m.width - 4
	if msg.IsUser {
		return m.renderUserMessage(msg, contentWidth)
	}
	return m.renderAssistantMessage(msg, contentWidth)
}

func (m *MessageList) renderUserMessage(msg message.Message, width int) string {
	t := styles.CurrentTheme()

	header := t.S().Text.Bold(true).Render("You")
	if msg.IsVoice {
		header += t.S().Muted.Render("  🎤")
	}
	header += t.S().Subtle.Render("  " + msg.Timestamp)

	var parts []string
	parts = append(parts, header)

	body := msg.Text
	switch msg.Status {
	case message.StatusUploading:
		body += "  ⏳"
	case message.StatusError:
		body += "  ✗"
	case message.StatusCompleted:
		body += "  ✓"
	}
	parts = append(parts, t.S().Text.Width(width).Render(body))

	if msg.AudioRef != "" {
		parts = append(parts, t.S().Muted.Render("  clip: "+msg.AudioRef))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *MessageList) renderAssistantMessage(msg message.Message, width int) string {
	t := styles.CurrentTheme()

	headerStyle := t.S().Primary.Bold(true)
	if msg.IsError() {
		headerStyle = t.S().Error.Bold(true)
	}
	header := headerStyle.Render("Quadra")
	if msg.Language != "" {
		header += t.S().Muted.Render("  [" + msg.Language + "]")
	}
	header += t.S().Subtle.Render("  " + msg.Timestamp)

	var parts []string
	parts = append(parts, header)

	if msg.Text != "" {
		bodyStyle := t.S().Text
		if msg.IsError() {
			bodyStyle = t.S().Error
		}
		parts = append(parts, bodyStyle.Width(width).Render(msg.Text))
	}

	if msg.OriginalText != "" {
		parts = append(parts, t.S().Muted.Width(width).Render("  from: "+msg.OriginalText))
	}

	if msg.Download != nil {
		dl := fmt.Sprintf("  ⇩ %s (%s)", msg.Download.FileName, msg.Download.URL)
		parts = append(parts, t.S().Info.Width(width).Render(dl))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
