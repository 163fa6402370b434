package sessions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// SessionList displays the saved conversations with navigation.
type SessionList struct {
	sessionSvc *session.Service
	sessions   []*session.Session
	cursor     int
	width      int
	height     int
	offset     int // Scroll offset
	searchText string
	searchMode session.SearchMode
}

// NewSessionList creates a new session list.
func NewSessionList(svc *session.Service) *SessionList {
	return &SessionList{
		sessionSvc: svc,
		searchMode: session.SearchContent,
	}
}

// Refresh reloads the session list from the service.
func (l *SessionList) Refresh() {
	if l.sessionSvc == nil {
		l.sessions = nil
		return
	}
	l.sessions = sortByRecency(l.sessionSvc.Sessions())
	debug.Log("SessionList.Refresh: loaded %d sessions", len(l.sessions))

	if l.cursor >= len(l.sessions) {
		l.cursor = max(0, len(l.sessions)-1)
	}
}

// Search filters sessions by keyword in the current search mode.
func (l *SessionList) Search(keyword string, mode session.SearchMode) {
	l.searchText = keyword
	l.searchMode = mode

	if keyword == "" {
		l.Refresh()
		return
	}

	l.sessions = sortByRecency(l.sessionSvc.Search(keyword, mode))
	l.cursor = 0
	l.offset = 0
}

// Count returns the number of listed sessions.
func (l *SessionList) Count() int {
	return len(l.sessions)
}

// Total returns the size of the unfiltered session set.
func (l *SessionList) Total() int {
	if l.sessionSvc == nil {
		return 0
	}
	return len(l.sessionSvc.Sessions())
}

// SetSize sets the list dimensions.
func (l *SessionList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Selected returns the currently selected session.
func (l *SessionList) Selected() *session.Session {
	if l.cursor >= 0 && l.cursor < len(l.sessions) {
		return l.sessions[l.cursor]
	}
	return nil
}

// Update handles messages.
func (l *SessionList) Update(msg tea.Msg) (*SessionList, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "down", "j":
			if l.cursor < len(l.sessions)-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "home", "g":
			l.cursor = 0
			l.offset = 0
		case "end", "G":
			l.cursor = max(0, len(l.sessions)-1)
			l.ensureVisible()
		case "enter":
			if selected := l.Selected(); selected != nil {
				return l, util.CmdHandler(SessionSelectedMsg{SessionID: selected.ID})
			}
		case "n":
			return l, util.CmdHandler(NewSessionMsg{})
		case "d":
			if selected := l.Selected(); selected != nil {
				return l, util.CmdHandler(DeleteSessionMsg{SessionID: selected.ID})
			}
		}
	}

	return l, nil
}

func (l *SessionList) ensureVisible() {
	visibleRows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	} else if l.cursor >= l.offset+visibleRows {
		l.offset = l.cursor - visibleRows + 1
	}
}

func (l *SessionList) visibleRows() int {
	// Each session takes 3 lines (preview + meta + spacing)
	return max(1, (l.height-2)/3)
}

// View renders the session list.
func (l *SessionList) View() string {
	t := styles.CurrentTheme()

	if len(l.sessions) == 0 {
		emptyStyle := t.S().Muted.
			Width(l.width).
			Align(lipgloss.Center).
			Padding(2, 0)
		if l.searchText != "" {
			return emptyStyle.Render("No chats match your search.")
		}
		return emptyStyle.Render("No chats yet. Press [n] to start one.")
	}

	var rows []string
	visibleRows := l.visibleRows()
	endIdx := min(l.offset+visibleRows, len(l.sessions))

	for i := l.offset; i < endIdx; i++ {
		rows = append(rows, l.renderSession(l.sessions[i], i == l.cursor))
	}

	var header string
	if l.offset > 0 {
		header = t.S().Muted.Render(fmt.Sprintf("  ↑ %d more above", l.offset))
	}

	var footer string
	remaining := len(l.sessions) - endIdx
	if remaining > 0 {
		footer = t.S().Muted.Render(fmt.Sprintf("  ↓ %d more below", remaining))
	}

	content := strings.Join(rows, "\n")
	if header != "" {
		content = header + "\n" + content
	}
	if footer != "" {
		content = content + "\n" + footer
	}

	return content
}

func (l *SessionList) renderSession(sess *session.Session, selected bool) string {
	t := styles.CurrentTheme()

	preview := sess.LastMessage
	if preview == "" {
		preview = "(no messages)"
	}
	preview = strings.ReplaceAll(preview, "\n", " ")
	maxPreviewLen := l.width - 6
	if maxPreviewLen > 3 && len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen-3] + "..."
	}

	timeStr := formatRelativeTime(sess.CreatedAt)
	meta := fmt.Sprintf("%d msgs · %s", len(sess.Messages), timeStr)

	var sb strings.Builder
	if selected {
		sb.WriteString(t.S().Primary.Bold(true).Render("> "))
		sb.WriteString(t.S().Primary.Bold(true).Render(preview))
		sb.WriteString("\n")
		sb.WriteString(t.S().Muted.Render("  " + meta))
	} else {
		sb.WriteString(t.S().Text.Render("  " + preview))
		sb.WriteString("\n")
		sb.WriteString(t.S().Muted.Render("  " + meta))
	}

	return sb.String()
}

func sortByRecency(sessions []*session.Session) []*session.Session {
	sorted := make([]*session.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// formatRelativeTime formats a time as a relative string.
func formatRelativeTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 48*time.Hour:
		return "yesterday"
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2")
	}
}
