// Package suggestions renders the completion list. The first entry is the one
// autocomplete takes, so it is marked.
package suggestions

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezsql/internal/ui/components/panel"
)

// Styles for the suggestions list
type Styles struct {
	Panel panel.Styles
	Item  lipgloss.Style
	First lipgloss.Style
	Label lipgloss.Style // the "Saved: " prefix
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Panel: panel.DefaultStyles(),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D8DEE9")),
		First: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8FBCBB")).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4C566A")).
			Italic(true),
	}
}

// Model represents the suggestions state
type Model struct {
	items   []string
	maxShow int
	label   string
	width   int
	styles  Styles
}

// New creates a suggestions list showing at most maxShow items.
// label is the prefix that marks saved query entries.
func New(maxShow int, label string) Model {
	return Model{
		maxShow: maxShow,
		label:   label,
		styles:  DefaultStyles(),
	}
}

// SetItems sets the suggestion items
func (m Model) SetItems(items []string) Model {
	m.items = items
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// SetWidth sets the outer width
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// Height is the outer height: maxShow rows plus the border
func (m Model) Height() int {
	return m.maxShow + 2
}

// Len returns number of items
func (m Model) Len() int {
	return len(m.items)
}

// View renders the suggestions panel. It always has the same height so the
// layout does not jump as suggestions come and go.
func (m Model) View() string {
	n := min(len(m.items), m.maxShow)
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, m.renderItem(i))
	}
	return panel.New("Suggestions").
		SetStyles(m.styles.Panel).
		SetSize(m.width, m.Height()).
		SetLines(lines).
		View()
}

func (m Model) renderItem(i int) string {
	item := m.items[i]
	style := m.styles.Item
	prefix := "  "
	if i == 0 {
		style = m.styles.First
		prefix = "> "
	}
	if m.label != "" && strings.HasPrefix(item, m.label) {
		return prefix + m.styles.Label.Render(m.label) + style.Render(strings.TrimPrefix(item, m.label))
	}
	return prefix + style.Render(item)
}
