// internal/ui/model.go
// Root Model struct, constructor, Init and Update
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezsql/internal/console"
	"github.com/nhath/ezsql/internal/logger"
	"github.com/nhath/ezsql/internal/ui/autocomplete"
	"github.com/nhath/ezsql/internal/ui/components/suggestions"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the root Bubble Tea model
type Model struct {
	ctx     context.Context
	machine *console.Machine

	// Components
	help        help.Model
	suggestions suggestions.Model

	pollInterval  time.Duration
	status        string // connection label shown in the footer
	width, height int

	// err ends the session; it is returned from Run
	err      error
	quitting bool
}

// NewModel creates a new UI model around a console state machine
func NewModel(ctx context.Context, machine *console.Machine, pollInterval time.Duration, status string) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(textPrimary)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(textFaint)

	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}

	return Model{
		ctx:          ctx,
		machine:      machine,
		help:         h,
		suggestions:  suggestions.New(autocomplete.DisplayLimit, autocomplete.SavedLabel).SetStyles(SuggestionStyle),
		pollInterval: pollInterval,
		status:       status,
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

// Err returns the error that ended the session, if any
func (m Model) Err() error {
	return m.err
}

// Init starts the frame tick
func (m Model) Init() tea.Cmd {
	return frameTick(m.pollInterval)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		return m, frameTick(m.pollInterval)

	case tea.KeyMsg:
		action, err := m.machine.HandleKey(m.ctx, msg)
		if err != nil {
			logger.Error("saving query failed", "error", err)
			m.err = &SessionError{Op: "save", Err: err}
			m.quitting = true
			return m, tea.Quit
		}
		if action == console.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}
