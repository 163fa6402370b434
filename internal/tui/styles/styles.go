// Package styles provides the theme for the Quadra TUI.
package styles

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme holds the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles     *Styles
	stylesOnce sync.Once
}

// Styles are the prebuilt lipgloss styles derived from the theme.
type Styles struct {
	Title   lipgloss.Style
	Primary lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// S returns the styles for this theme, building them on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = &Styles{
			Title:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Primary: lipgloss.NewStyle().Foreground(t.Primary),
			Text:    lipgloss.NewStyle().Foreground(t.FgBase),
			Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
			Success: lipgloss.NewStyle().Foreground(t.Success),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
			Warning: lipgloss.NewStyle().Foreground(t.Warning),
			Info:    lipgloss.NewStyle().Foreground(t.Info),
		}
	})
	return t.styles
}

// ParseHex converts a hex string like "#61afef" into a color.
func ParseHex(hex string) color.Color {
	return lipgloss.Color(hex)
}

var (
	managerMu    sync.Mutex
	currentTheme *Theme
)

// NewManager initializes the theme registry with the default theme.
func NewManager() {
	managerMu.Lock()
	defer managerMu.Unlock()
	if currentTheme == nil {
		currentTheme = NewDefaultTheme()
	}
}

// CurrentTheme returns the active theme, initializing the default if
// needed.
func CurrentTheme() *Theme {
	managerMu.Lock()
	defer managerMu.Unlock()
	if currentTheme == nil {
		currentTheme = NewDefaultTheme()
	}
	return currentTheme
}
