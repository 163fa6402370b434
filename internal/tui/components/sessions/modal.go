package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// ModalStep represents the current step in the modal flow.
type ModalStep int

const (
	// StepList shows the session list.
	StepList ModalStep = iota
	// StepSearch shows the search input above the list.
	StepSearch
	// StepDeleteConfirm shows delete confirmation.
	StepDeleteConfirm
)

// Modal is the chat history modal: browse, search, switch and delete
// saved conversations.
type Modal struct {
	sessionSvc     *session.Service
	sessionList    *SessionList
	searchBox      *SearchBox
	hints          *HintBar
	step           ModalStep
	visible        bool
	width          int
	height         int
	deleteTargetID string
}

// New creates a new sessions Modal.
func New(sessionSvc *session.Service) *Modal {
	return &Modal{
		sessionSvc:  sessionSvc,
		sessionList: NewSessionList(sessionSvc),
		searchBox:   NewSearchBox(),
		hints:       NewHintBar(),
		step:        StepList,
	}
}

// Show makes the modal visible with a fresh session list.
func (m *Modal) Show() {
	debug.Log("Modal.Show: showing modal")
	m.visible = true
	m.step = StepList
	m.hints.SetMode(HintModeNormal)
	m.sessionList.Refresh()
}

// Hide hides the modal.
func (m *Modal) Hide() {
	m.visible = false
	m.searchBox.Hide()
	m.step = StepList
}

// IsVisible returns whether the modal is visible.
func (m *Modal) IsVisible() bool {
	return m.visible
}

// SetSize sets the modal size.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height

	innerWidth := min(width-10, 80)
	innerHeight := height - 12

	m.sessionList.SetSize(innerWidth, innerHeight)
	m.searchBox.SetWidth(innerWidth)
	m.hints.SetWidth(innerWidth)
}

// Update handles messages.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			return m.handleEscape()
		}
	}

	switch m.step {
	case StepList:
		return m.updateList(msg)
	case StepSearch:
		return m.updateSearch(msg)
	case StepDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	}

	return m, nil
}

func (m *Modal) handleEscape() (*Modal, tea.Cmd) {
	switch m.step {
	case StepList:
		m.Hide()
		return m, util.CmdHandler(ModalClosedMsg{})
	case StepSearch:
		m.searchBox.Hide()
		m.sessionList.Refresh()
		m.step = StepList
		m.hints.SetMode(HintModeNormal)
		return m, nil
	case StepDeleteConfirm:
		m.step = StepList
		m.hints.SetMode(HintModeNormal)
		return m, nil
	}
	return m, nil
}

func (m *Modal) updateList(msg tea.Msg) (*Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionSelectedMsg:
		m.Hide()
		return m, tea.Batch(
			util.CmdHandler(ModalClosedMsg{}),
			util.CmdHandler(SwitchSessionMsg{SessionID: msg.SessionID}),
		)

	case DeleteSessionMsg:
		m.deleteTargetID = msg.SessionID
		m.step = StepDeleteConfirm
		m.hints.SetMode(HintModeDelete)
		return m, nil

	case NewSessionMsg:
		id := m.sessionSvc.NewSession()
		m.Hide()
		return m, tea.Batch(
			util.CmdHandler(ModalClosedMsg{}),
			util.CmdHandler(SwitchSessionMsg{SessionID: id}),
		)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "/" {
		m.step = StepSearch
		m.hints.SetMode(HintModeSearch)
		return m, m.searchBox.Show()
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

func (m *Modal) updateSearch(msg tea.Msg) (*Modal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			m.searchBox.ToggleMode()
			m.sessionList.Search(m.searchBox.Value(), m.searchBox.Mode())
			return m, nil
		case "enter":
			// Keep the filter, move focus back to the list.
			m.step = StepList
			m.hints.SetMode(HintModeNormal)
			return m, nil
		case "up", "down":
			var cmd tea.Cmd
			m.sessionList, cmd = m.sessionList.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)
	m.sessionList.Search(m.searchBox.Value(), m.searchBox.Mode())
	return m, cmd
}

func (m *Modal) updateDeleteConfirm(msg tea.Msg) (*Modal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		id := m.deleteTargetID
		m.deleteTargetID = ""
		m.step = StepList
		m.hints.SetMode(HintModeNormal)
		if err := m.sessionSvc.Delete(context.Background(), id); err != nil {
			debug.Error("sessions", err, "deleting session")
			return m, util.ReportError(err)
		}
		m.sessionList.Refresh()
		return m, util.CmdHandler(SwitchSessionMsg{SessionID: m.sessionSvc.ActiveID()})
	case "n":
		m.deleteTargetID = ""
		m.step = StepList
		m.hints.SetMode(HintModeNormal)
	}

	return m, nil
}

// View renders the modal.
func (m *Modal) View() string {
	if !m.visible {
		return ""
	}

	t := styles.CurrentTheme()

	innerWidth := min(m.width-10, 80)

	var parts []string
	if m.searchBox.IsVisible() {
		m.searchBox.SetCounts(m.sessionList.Count(), m.sessionList.Total())
		parts = append(parts, m.searchBox.View())
	}
	parts = append(parts, m.sessionList.View())

	if m.step == StepDeleteConfirm {
		confirm := t.S().Warning.Render("Delete this chat? [y/n]")
		parts = append(parts, "", confirm)
	}

	parts = append(parts, "", m.hints.View())

	content := strings.Join(parts, "\n")

	panel := NewBorderedPanel()
	panel.SetTitle(fmt.Sprintf(" Chats (%d) ", m.sessionList.Total()))
	panel.SetContent(content)
	panel.SetFocused(true)
	panel.SetSize(innerWidth+4, strings.Count(content, "\n")+3)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		panel.View(),
	)
}

// Cursor returns the cursor for the search input when active.
func (m *Modal) Cursor() *tea.Cursor {
	if m.visible && m.step == StepSearch {
		return m.searchBox.Cursor()
	}
	return nil
}
