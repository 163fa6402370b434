package chat

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/tui/styles"
	"github.com/quadra/translator/internal/tui/util"
)

// PickerPurpose distinguishes what a language selection applies to.
type PickerPurpose int

// Picker purposes.
const (
	// PickTarget changes the target language for new translations.
	PickTarget PickerPurpose = iota
	// PickRetranslate re-translates the last translation into the
	// selected language without changing the target.
	PickRetranslate
)

// LanguageChosenMsg is sent when a language is selected from the picker.
type LanguageChosenMsg struct {
	Code    language.Code
	Purpose PickerPurpose
}

// PickerClosedMsg is sent when the picker is dismissed without a choice.
type PickerClosedMsg struct{}

// LanguagePicker is a modal list for choosing a target language.
type LanguagePicker struct {
	languages []language.Language
	cursor    int
	purpose   PickerPurpose
	visible   bool
	width     int
	height    int
}

// NewLanguagePicker creates a new language picker.
func NewLanguagePicker() *LanguagePicker {
	return &LanguagePicker{
		languages: language.All(),
	}
}

// Show opens the picker for the given purpose, with the cursor on the
// currently selected language when it is in the list.
func (p *LanguagePicker) Show(purpose PickerPurpose, current language.Code) {
	p.purpose = purpose
	p.visible = true
	p.cursor = 0
	for i, lang := range p.languages {
		if lang.Code == current {
			p.cursor = i
			break
		}
	}
}

// Hide closes the picker.
func (p *LanguagePicker) Hide() {
	p.visible = false
}

// IsVisible returns whether the picker is open.
func (p *LanguagePicker) IsVisible() bool {
	return p.visible
}

// SetSize sets the picker dimensions.
func (p *LanguagePicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles key events while the picker is open.
func (p *LanguagePicker) Update(msg tea.Msg) (*LanguagePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.languages)-1 {
			p.cursor++
		}
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = len(p.languages) - 1
	case "enter":
		chosen := p.languages[p.cursor]
		p.visible = false
		return p, util.CmdHandler(LanguageChosenMsg{
			Code:    chosen.Code,
			Purpose: p.purpose,
		})
	case "esc":
		p.visible = false
		return p, util.CmdHandler(PickerClosedMsg{})
	}

	return p, nil
}

// View renders the picker as a centered overlay.
func (p *LanguagePicker) View() string {
	if !p.visible {
		return ""
	}

	t := styles.CurrentTheme()

	title := " Target Language "
	if p.purpose == PickRetranslate {
		title = " Re-translate To "
	}

	var lines []string
	for i, lang := range p.languages {
		line := fmt.Sprintf("  %s", lang.Name)
		if i == p.cursor {
			line = t.S().Primary.Bold(true).Render("> " + lang.Name)
		} else {
			line = t.S().Text.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	lines = append(lines, t.S().Subtle.Render("[enter] select [esc] cancel"))

	content := ""
	for i, line := range lines {
		if i > 0 {
			content += "\n"
		}
		content += line
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			t.S().Primary.Bold(true).Render(title),
			content,
		))

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
