// Package tui provides the terminal user interface for Quadra.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/quadra/translator/internal/audio"
	"github.com/quadra/translator/internal/bridge"
	"github.com/quadra/translator/internal/config"
	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/pipeline"
	"github.com/quadra/translator/internal/pubsub"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/speech"
	"github.com/quadra/translator/internal/tui/components/sessions"
	"github.com/quadra/translator/internal/tui/page"
	"github.com/quadra/translator/internal/tui/page/chat"
	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// Deps bundles the services the TUI is built on.
type Deps struct {
	Config   *config.Config
	Sessions *session.Service
	Pipeline *pipeline.Pipeline
	Speaker  *speech.Output
	Recorder audio.Recorder
	Hub      *pubsub.Hub
}

// Model is the main TUI model: the chat page plus the chats modal
// overlay.
type Model struct {
	chatPage    *chat.Model
	modal       *sessions.Modal
	bridge      *bridge.TUIBridge
	currentPage page.ID
	width       int
	height      int
	ready       bool
}

// New creates a new TUI model.
func New(deps Deps) *Model {
	return &Model{
		chatPage:    chat.New(deps.Config, deps.Pipeline, deps.Sessions, deps.Speaker, deps.Recorder),
		modal:       sessions.New(deps.Sessions),
		currentPage: page.Chat,
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return m.chatPage.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debug.Event("tui", "WindowSize", fmt.Sprintf("width=%d height=%d", msg.Width, msg.Height))
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chatPage.SetSize(msg.Width, msg.Height)
		m.modal.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		debug.Event("tui", "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+o":
			if !m.modal.IsVisible() {
				m.modal.Show()
				return m, nil
			}
		}
		if m.modal.IsVisible() {
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.chatPage, cmd = m.chatPage.Update(msg)
		return m, cmd

	case sessions.ModalClosedMsg:
		m.modal.Hide()
		return m, nil

	case sessions.SwitchSessionMsg:
		// The modal already switched or created the session.
		var cmd tea.Cmd
		m.chatPage, cmd = m.chatPage.Update(msg)
		return m, cmd

	case bridge.SessionEventMsg, bridge.PipelineEventMsg, bridge.SpeechEventMsg:
		// Background completions refresh the chat even while the modal
		// is on top.
		var cmd tea.Cmd
		m.chatPage, cmd = m.chatPage.Update(msg)
		return m, cmd

	case util.ErrorMsg:
		var cmd tea.Cmd
		m.chatPage, cmd = m.chatPage.Update(msg)
		return m, cmd

	case bridge.ErrorMsg:
		debug.Error("tui", msg.Error, msg.Source)
		return m, nil
	}

	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chatPage, cmd = m.chatPage.Update(msg)
	return m, cmd
}

// View renders the TUI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	if m.modal.IsVisible() {
		view.Content = m.modal.View()
		view.Cursor = m.modal.Cursor()
		return view
	}

	switch m.currentPage {
	case page.Chat:
		view.Content = m.chatPage.View()
		view.Cursor = m.chatPage.Cursor()
	}
	return view
}

// Run starts the TUI program.
func Run(deps Deps) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("quadra requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	styles.NewManager()

	model := New(deps)
	p := tea.NewProgram(model)

	if deps.Hub != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tuiBridge := bridge.NewTUIBridge(deps.Hub, p)
		model.bridge = tuiBridge
		tuiBridge.Start(ctx)
		defer tuiBridge.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
