// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezsql/internal/config"
	"github.com/nhath/ezsql/internal/ui/components/panel"
	"github.com/nhath/ezsql/internal/ui/components/suggestions"
)

var (
	textPrimary    lipgloss.Color
	textFaint      lipgloss.Color
	accentColor    lipgloss.Color
	keywordColor   lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	borderColor    lipgloss.Color

	// Styles
	KeywordStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	SuccessStyle    lipgloss.Style
	StatusStyle     lipgloss.Style
	PanelStyles     panel.Styles
	SuggestionStyle suggestions.Styles
)

func init() {
	InitStyles(config.DefaultTheme())
}

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textFaint = lipgloss.Color(theme.TextFaint)
	accentColor = lipgloss.Color(theme.Accent)
	keywordColor = lipgloss.Color(theme.Keyword)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	borderColor = lipgloss.Color(theme.Border)

	KeywordStyle = lipgloss.NewStyle().
		Foreground(keywordColor).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	StatusStyle = lipgloss.NewStyle().
		Foreground(textFaint)

	PanelStyles = panel.Styles{
		Border:       lipgloss.NewStyle().Foreground(borderColor),
		ActiveBorder: lipgloss.NewStyle().Foreground(accentColor),
		Title:        lipgloss.NewStyle().Bold(true).Foreground(textPrimary),
		Body:         lipgloss.NewStyle().Foreground(textPrimary),
		Overflow:     lipgloss.NewStyle().Foreground(textFaint).Italic(true),
	}

	SuggestionStyle = suggestions.Styles{
		Panel: PanelStyles,
		Item:  lipgloss.NewStyle().Foreground(textPrimary),
		First: lipgloss.NewStyle().Foreground(highlightColor).Bold(true),
		Label: lipgloss.NewStyle().Foreground(textFaint).Italic(true),
	}
}
