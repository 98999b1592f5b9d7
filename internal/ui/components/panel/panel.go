// Package panel renders a fixed-size bordered box with its title set into
// the top border.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles for the panel
type Styles struct {
	Border       lipgloss.Style // foreground colors the frame
	ActiveBorder lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Overflow     lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Border:       lipgloss.NewStyle().Foreground(lipgloss.Color("#4C566A")),
		ActiveBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#88C0D0")),
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D8DEE9")),
		Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("#D8DEE9")),
		Overflow:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4C566A")).Italic(true),
	}
}

// Model is a titled panel. Width and height include the border.
type Model struct {
	title  string
	lines  []string
	width  int
	height int
	active bool
	styles Styles
}

// New creates a panel with the given title
func New(title string) Model {
	return Model{title: title, styles: DefaultStyles()}
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// SetSize sets the outer dimensions
func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	return m
}

// SetLines sets the body lines; they may already carry ANSI styling
func (m Model) SetLines(lines []string) Model {
	m.lines = lines
	return m
}

// SetActive highlights the frame
func (m Model) SetActive(active bool) Model {
	m.active = active
	return m
}

// InnerHeight is the number of body rows
func (m Model) InnerHeight() int {
	return max(m.height-2, 0)
}

// InnerWidth is the number of body columns
func (m Model) InnerWidth() int {
	return max(m.width-2, 0)
}

// View renders the panel. Lines beyond the body height are replaced by a
// "… N more lines" marker on the last row; long lines are truncated.
func (m Model) View() string {
	if m.width < 4 || m.height < 2 {
		return ""
	}
	border := lipgloss.RoundedBorder()
	frame := m.styles.Border
	if m.active {
		frame = m.styles.ActiveBorder
	}
	inner := m.InnerWidth()

	title := ansi.Truncate(" "+m.title+" ", max(inner-1, 0), "…")
	fill := max(inner-1-lipgloss.Width(title), 0)
	var b strings.Builder
	b.WriteString(frame.Render(border.TopLeft + border.Top))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString(frame.Render(strings.Repeat(border.Top, fill) + border.TopRight))

	for _, line := range m.body() {
		pad := max(inner-lipgloss.Width(line), 0)
		b.WriteString("\n")
		b.WriteString(frame.Render(border.Left))
		b.WriteString(line + strings.Repeat(" ", pad))
		b.WriteString(frame.Render(border.Right))
	}

	b.WriteString("\n")
	b.WriteString(frame.Render(border.BottomLeft + strings.Repeat(border.Bottom, inner) + border.BottomRight))
	return b.String()
}

var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// body returns exactly InnerHeight rows, each at most InnerWidth cells wide
func (m Model) body() []string {
	rows := m.InnerHeight()
	inner := m.InnerWidth()
	if rows == 0 {
		return nil
	}
	out := make([]string, 0, rows)

	visible := m.lines
	hidden := 0
	if len(visible) > rows {
		hidden = len(visible) - rows + 1
		visible = visible[:rows-1]
	}
	for _, line := range visible {
		line = flatten.Replace(line)
		out = append(out, m.styles.Body.Render(ansi.Truncate(line, inner, "…")))
	}
	if hidden > 0 {
		out = append(out, m.styles.Overflow.Render(ansi.Truncate(overflowMarker(hidden), inner, "…")))
	}
	for len(out) < rows {
		out = append(out, "")
	}
	return out
}

func overflowMarker(hidden int) string {
	if hidden == 1 {
		return "… 1 more line"
	}
	return fmt.Sprintf("… %d more lines", hidden)
}
