// Package chat implements the translation chat page.
package chat

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/audio"
	"github.com/quadra/translator/internal/bridge"
	"github.com/quadra/translator/internal/config"
	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/pipeline"
	"github.com/quadra/translator/internal/pubsub"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/speech"
	"github.com/quadra/translator/internal/tui/components/sessions"
	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// Fixed companion deployments, surfaced on request.
const (
	voiceAppURL = "https://voice-translate-1.onrender.com/"
	webAppURL   = "https://translate-web-jade.vercel.app/"
)

// Model is the chat page. It owns the conversation view, the text
// input, the language picker and the upload prompts, and dispatches
// every translation workflow.
type Model struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	sessions *session.Service
	speaker  *speech.Output
	recorder audio.Recorder

	messageList *MessageList
	input       *Input
	statusBar   *StatusBar
	picker      *LanguagePicker
	prompt      *PathPrompt

	target      language.Code
	width       int
	height      int
	recording   bool
	helpVisible bool
}

// New creates the chat page.
func New(
	cfg *config.Config,
	pl *pipeline.Pipeline,
	svc *session.Service,
	speaker *speech.Output,
	recorder audio.Recorder,
) *Model {
	m := &Model{
		cfg:         cfg,
		pipeline:    pl,
		sessions:    svc,
		speaker:     speaker,
		recorder:    recorder,
		messageList: NewMessageList(),
		input:       NewInput(),
		statusBar:   NewStatusBar(),
		picker:      NewLanguagePicker(),
		prompt:      NewPathPrompt(),
		target:      cfg.DefaultLanguage,
	}
	m.statusBar.SetLanguage(language.DisplayName(m.target))
	return m
}

// Init focuses the input and loads the active session.
func (m *Model) Init() tea.Cmd {
	m.refreshMessages()
	return m.input.Focus()
}

// Update handles messages for the chat page.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case LanguageChosenMsg:
		return m.handleLanguageChosen(msg)

	case PickerClosedMsg:
		return m, m.input.Focus()

	case PathSubmittedMsg:
		return m.handlePathSubmitted(msg)

	case PromptClosedMsg:
		return m, m.input.Focus()

	case opDoneMsg:
		return m.handleOpDone(msg)

	case recordStartedMsg:
		return m.handleRecordStarted(msg)

	case recordStoppedMsg:
		return m.handleRecordStopped(msg)

	case copiedMsg:
		if msg.err != nil {
			m.statusBar.SetError("copy failed: " + msg.err.Error())
		} else {
			m.statusBar.SetInfo("Translation copied to clipboard")
		}
		return m, nil

	case errorAppendedMsg:
		m.refreshMessages()
		return m, nil

	case util.ErrorMsg:
		m.statusBar.SetError(msg.Err.Error())
		return m, nil

	case sessions.SwitchSessionMsg:
		if msg.SessionID != "" {
			m.sessions.Load(msg.SessionID)
		}
		m.refreshMessages()
		m.statusBar.SetStatus(StatusReady)
		return m, m.input.Focus()

	case bridge.SessionEventMsg:
		m.refreshMessages()
		return m, nil

	case bridge.PipelineEventMsg:
		return m.handlePipelineEvent(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Everything else belongs to whichever input is focused.
	if m.prompt.IsVisible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	if m.picker.IsVisible() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	if m.prompt.IsVisible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.submitText()

	case "ctrl+l":
		m.input.Blur()
		m.picker.Show(PickTarget, m.target)
		return m, nil

	case "ctrl+r":
		if _, ok := m.messageList.LastTranslation(); !ok {
			m.statusBar.SetInfo("Nothing to re-translate yet")
			return m, nil
		}
		m.input.Blur()
		m.picker.Show(PickRetranslate, m.target)
		return m, nil

	case "ctrl+y":
		if last, ok := m.messageList.LastTranslation(); ok {
			return m, m.copyCmd(last.Text)
		}
		m.statusBar.SetInfo("Nothing to copy yet")
		return m, nil

	case "ctrl+s":
		return m.speakLast()

	case "ctrl+u":
		m.input.Blur()
		return m, m.prompt.Show(PromptFile)

	case "ctrl+p":
		m.input.Blur()
		return m, m.prompt.Show(PromptImage)

	case "ctrl+t":
		return m.toggleRecording()

	case "ctrl+n":
		m.sessions.NewSession()
		m.refreshMessages()
		m.statusBar.SetStatus(StatusReady)
		return m, m.input.Focus()

	case "ctrl+g":
		m.statusBar.SetInfo("Voice app: " + voiceAppURL)
		return m, nil

	case "ctrl+b":
		m.statusBar.SetInfo("Web app: " + webAppURL)
		return m, nil

	case "ctrl+k":
		m.helpVisible = true
		return m, nil

	case "pgup":
		m.messageList.ScrollUp()
		return m, nil

	case "pgdown":
		m.messageList.ScrollDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitText() (*Model, tea.Cmd) {
	text := m.input.Value()
	if m.pipeline.TextBusy() {
		m.statusBar.SetError(pipeline.ErrTranslationBusy.Error())
		return m, nil
	}
	m.input.Clear()
	m.input.Disable()
	m.statusBar.SetStatus(StatusTranslating)
	return m, m.sendTextCmd(text, m.target)
}

func (m *Model) speakLast() (*Model, tea.Cmd) {
	last, ok := m.messageList.LastTranslation()
	if !ok {
		m.statusBar.SetInfo("Nothing to speak yet")
		return m, nil
	}
	if err := m.speaker.Speak(last.Text, last.Language); err != nil {
		m.statusBar.SetError("speech failed: " + err.Error())
		return m, nil
	}
	m.statusBar.SetStatus(StatusSpeaking)
	return m, nil
}

func (m *Model) toggleRecording() (*Model, tea.Cmd) {
	if m.recording {
		return m, m.stopRecordingCmd()
	}
	return m, m.startRecordingCmd()
}

func (m *Model) handleLanguageChosen(msg LanguageChosenMsg) (*Model, tea.Cmd) {
	switch msg.Purpose {
	case PickTarget:
		m.target = msg.Code
		m.statusBar.SetLanguage(language.DisplayName(msg.Code))
		if err := m.cfg.RememberLanguage(msg.Code); err != nil {
			debug.Error("chat", err, "remembering language")
		}
		return m, m.input.Focus()

	case PickRetranslate:
		last, ok := m.messageList.LastTranslation()
		if !ok {
			return m, m.input.Focus()
		}
		m.statusBar.SetStatus(StatusTranslating)
		return m, tea.Batch(m.input.Focus(), m.retranslateCmd(last, msg.Code))
	}
	return m, nil
}

func (m *Model) handlePathSubmitted(msg PathSubmittedMsg) (*Model, tea.Cmd) {
	m.statusBar.SetStatus(StatusTranslating)
	switch msg.Kind {
	case PromptFile:
		return m, m.sendFileCmd(msg.Path, m.target)
	case PromptImage:
		return m, m.sendImageCmd(msg.Path, m.target)
	}
	return m, nil
}

func (m *Model) handleOpDone(msg opDoneMsg) (*Model, tea.Cmd) {
	m.refreshMessages()

	switch msg.kind {
	case opText, opRetranslate:
		m.input.Enable()
		if msg.err != nil {
			m.statusBar.SetError(msg.err.Error())
		} else {
			m.statusBar.SetStatus(StatusReady)
		}
		return m, m.input.Focus()

	case opFile, opImage:
		if msg.err != nil {
			// Validation problems, and for images remote failures too,
			// stay inside the prompt.
			m.prompt.SetError(msg.err.Error())
			m.statusBar.SetStatus(StatusReady)
			return m, nil
		}
		m.prompt.Hide()
		m.statusBar.SetStatus(StatusReady)
		return m, m.input.Focus()

	case opVoice:
		if msg.err != nil {
			m.statusBar.SetError(msg.err.Error())
		} else {
			m.statusBar.SetStatus(StatusReady)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleRecordStarted(msg recordStartedMsg) (*Model, tea.Cmd) {
	if msg.err != nil {
		m.statusBar.SetStatus(StatusReady)
		if errors.Is(msg.err, audio.ErrPermissionDenied) {
			return m, m.appendErrorCmd(msg.err.Error())
		}
		m.statusBar.SetError(msg.err.Error())
		return m, nil
	}
	m.recording = true
	m.statusBar.SetStatus(StatusRecording)
	return m, nil
}

func (m *Model) handleRecordStopped(msg recordStoppedMsg) (*Model, tea.Cmd) {
	m.recording = false
	if msg.err != nil {
		m.statusBar.SetError(msg.err.Error())
		return m, nil
	}
	m.statusBar.SetStatus(StatusTranslating)
	return m, m.sendVoiceCmd(msg.audio, m.target)
}

func (m *Model) handlePipelineEvent(msg bridge.PipelineEventMsg) (*Model, tea.Cmd) {
	switch msg.Event.Type {
	case pubsub.EventStarted:
		m.statusBar.SetStatus(StatusTranslating)
	case pubsub.EventCompleted, pubsub.EventFailed:
		if !m.pipeline.TextBusy() && !m.recording {
			m.statusBar.SetStatus(StatusReady)
		}
	}
	m.refreshMessages()
	return m, nil
}

// refreshMessages re-reads the active session's messages.
func (m *Model) refreshMessages() {
	m.messageList.SetMessages(m.sessions.Messages(m.sessions.ActiveID()))
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.setSize(width, height)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	listHeight := height - m.input.Height() - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.messageList.SetSize(width, listHeight)
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.picker.SetSize(width, height)
	m.prompt.SetSize(width, height)
}

// View renders the chat page.
func (m *Model) View() string {
	if m.picker.IsVisible() {
		return m.picker.View()
	}
	if m.prompt.IsVisible() {
		return m.prompt.View()
	}
	if m.helpVisible {
		return m.helpView()
	}

	t := styles.CurrentTheme()
	title := t.S().Title.Render(" Quadra Translator ")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.messageList.View(),
		m.input.View(),
		m.statusBar.View(),
	)
}

func (m *Model) helpView() string {
	t := styles.CurrentTheme()

	rows := []string{
		"enter    translate typed text",
		"ctrl+l   choose target language",
		"ctrl+r   re-translate last result",
		"ctrl+y   copy last translation",
		"ctrl+s   speak last translation",
		"ctrl+u   translate a document",
		"ctrl+p   translate an image",
		"ctrl+t   record / stop voice message",
		"ctrl+n   new chat",
		"ctrl+o   open chats panel",
		"ctrl+g   show voice app link",
		"ctrl+b   show web app link",
		"pgup/dn  scroll messages",
		"ctrl+c   quit",
	}

	lines := []string{t.S().Title.Render(" Keys "), ""}
	for _, r := range rows {
		lines = append(lines, t.S().Text.Render(r))
	}
	lines = append(lines, "", t.S().Subtle.Render("press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Cursor returns the active text cursor, if any.
func (m *Model) Cursor() *tea.Cursor {
	if m.prompt.IsVisible() {
		return m.prompt.Cursor()
	}
	if m.picker.IsVisible() || m.helpVisible {
		return nil
	}
	return m.input.Cursor()
}

// IsRecording reports whether a voice recording is in progress.
func (m *Model) IsRecording() bool {
	return m.recording
}
