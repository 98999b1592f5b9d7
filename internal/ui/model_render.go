// internal/ui/model_render.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhath/ezsql/internal/console"
	"github.com/nhath/ezsql/internal/ui/autocomplete"
	"github.com/nhath/ezsql/internal/ui/components/panel"
	"github.com/nhath/ezsql/internal/ui/highlight"
	"github.com/nhath/ezsql/internal/ui/icons"
)

const (
	inputHeight  = 3
	minOutput    = 3
	cursorGlyph  = "▌"
	sqlErrPrefix = "SQL error: "
)

// View renders the input, suggestions and output panels plus the help footer.
// It only reads state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	buf := m.machine.Buffers()
	mode := m.machine.Mode()

	input := panel.New(inputTitle(mode)).
		SetStyles(PanelStyles).
		SetSize(m.width, inputHeight).
		SetActive(true)
	input = input.SetLines([]string{m.renderInput(buf.Input, mode, input.InnerWidth())})

	suggestionsView := m.suggestions.SetWidth(m.width).SetItems(autocomplete.Visible(buf.Suggestions)).View()
	footer := m.renderFooter(mode)

	outputHeight := m.height - inputHeight - m.suggestions.Height() - lipgloss.Height(footer)
	if outputHeight < minOutput {
		outputHeight = minOutput
	}
	output := panel.New(outputTitle(buf.Output)).
		SetStyles(PanelStyles).
		SetSize(m.width, outputHeight).
		SetLines(renderOutput(buf.Output))

	return lipgloss.JoinVertical(lipgloss.Left,
		input.View(),
		suggestionsView,
		output.View(),
		footer,
	)
}

func inputTitle(mode console.Mode) string {
	switch mode.(type) {
	case console.NamingQuery:
		return "SQL Input · query name"
	case console.SelectingSaved:
		return "SQL Input · select saved query"
	default:
		return "SQL Input"
	}
}

func outputTitle(lines []string) string {
	if len(lines) == 1 && strings.HasPrefix(lines[0], sqlErrPrefix) {
		return "Query Output " + icons.IconError
	}
	return "Query Output"
}

// renderInput shows the tail of the edit buffer so the cursor stays visible
func (m Model) renderInput(text string, mode console.Mode, width int) string {
	var line string
	switch mode.(type) {
	case console.SQLEntry:
		line = highlight.SQL(text, highlight.Styled(KeywordStyle)) + cursorGlyph
	case console.NamingQuery:
		line = text + cursorGlyph
	default:
		line = text
	}
	if over := lipgloss.Width(line) - width; over > 0 && width > 1 {
		line = ansi.TruncateLeft(line, over+1, "…")
	}
	return line
}

func renderOutput(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, sqlErrPrefix), strings.HasPrefix(l, "Failed to save query"):
			out[i] = ErrorStyle.Render(l)
		case strings.HasPrefix(l, "Saved query as "), strings.HasPrefix(l, "Loaded query "):
			out[i] = SuccessStyle.Render(l)
		default:
			out[i] = l
		}
	}
	return out
}

func (m Model) renderFooter(mode console.Mode) string {
	h := m.help
	h.Width = m.width
	if m.status == "" {
		return h.ShortHelpView(m.machine.Keys().HelpFor(mode))
	}
	status := StatusStyle.Render(m.status) + "  "
	h.Width = max(m.width-lipgloss.Width(status), 0)
	return status + h.ShortHelpView(m.machine.Keys().HelpFor(mode))
}

// statusLabel is the footer text naming the connection
func statusLabel(source string, icon string) string {
	if source == "" {
		return ""
	}
	return icon + " " + source
}
