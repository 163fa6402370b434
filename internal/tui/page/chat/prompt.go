package chat

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// PromptKind distinguishes what the entered path is for.
type PromptKind int

// Prompt kinds.
const (
	PromptFile PromptKind = iota
	PromptImage
)

// PathSubmittedMsg is sent when a path is entered in the prompt.
type PathSubmittedMsg struct {
	Kind PromptKind
	Path string
}

// PromptClosedMsg is sent when the prompt is dismissed.
type PromptClosedMsg struct{}

// PathPrompt is a modal input for entering a file or image path. It
// stays open and shows the error inline when the path is rejected.
type PathPrompt struct {
	input   textinput.Model
	kind    PromptKind
	errText string
	visible bool
	width   int
	height  int
}

// NewPathPrompt creates a new path prompt.
func NewPathPrompt() *PathPrompt {
	ti := textinput.New()
	ti.CharLimit = 512

	return &PathPrompt{
		input: ti,
	}
}

// Show opens the prompt for the given kind and focuses the input.
func (p *PathPrompt) Show(kind PromptKind) tea.Cmd {
	p.kind = kind
	p.visible = true
	p.errText = ""
	p.input.SetValue("")
	switch kind {
	case PromptFile:
		p.input.Placeholder = "Path to .txt, .pdf or .docx file..."
	case PromptImage:
		p.input.Placeholder = "Path to image file..."
	}
	return p.input.Focus()
}

// Hide closes the prompt and clears its state.
func (p *PathPrompt) Hide() {
	p.visible = false
	p.errText = ""
	p.input.SetValue("")
	p.input.Blur()
}

// IsVisible returns whether the prompt is open.
func (p *PathPrompt) IsVisible() bool {
	return p.visible
}

// SetError displays a validation error inside the prompt.
func (p *PathPrompt) SetError(msg string) {
	p.errText = msg
}

// SetSize sets the prompt dimensions.
func (p *PathPrompt) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles key events while the prompt is open.
func (p *PathPrompt) Update(msg tea.Msg) (*PathPrompt, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "enter":
			path := p.input.Value()
			if path == "" {
				p.errText = "Enter a path"
				return p, nil
			}
			p.errText = ""
			return p, util.CmdHandler(PathSubmittedMsg{Kind: p.kind, Path: path})
		case "esc":
			p.Hide()
			return p, util.CmdHandler(PromptClosedMsg{})
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt as a centered overlay.
func (p *PathPrompt) View() string {
	if !p.visible {
		return ""
	}

	t := styles.CurrentTheme()

	title := " Translate File "
	if p.kind == PromptImage {
		title = " Translate Image "
	}

	boxWidth := 60
	if p.width > 0 && boxWidth > p.width-4 {
		boxWidth = p.width - 4
	}

	lines := []string{
		t.S().Primary.Bold(true).Render(title),
		p.input.View(),
	}
	if p.errText != "" {
		lines = append(lines, t.S().Error.Render(p.errText))
	}
	lines = append(lines, t.S().Subtle.Render("[enter] send [esc] cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(boxWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}

// Cursor returns the cursor for the text input.
func (p *PathPrompt) Cursor() *tea.Cursor {
	if p.visible {
		return p.input.Cursor()
	}
	return nil
}
