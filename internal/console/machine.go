// Package console holds the interactive session's input modes and buffers.
// It knows nothing about the terminal: key events come in, buffers go out.
package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezsql/internal/logger"
	"github.com/nhath/ezsql/internal/savedquery"
	"github.com/nhath/ezsql/internal/ui/autocomplete"
)

// Messages shown in the output panel
const (
	MsgNamePrompt      = "Enter a name for this query and press Enter:"
	MsgSaveCancelled   = "Save cancelled."
	MsgNoSaved         = "No saved queries."
	MsgInvalidSelect   = "Invalid selection."
	MsgSelectCancelled = "Cancelled loading saved query."
	DefaultQueryName   = "Unnamed Query"
)

// Executor runs SQL and folds the outcome into display lines
type Executor interface {
	Execute(ctx context.Context, query string) []string
}

// Store is the saved query collaborator
type Store interface {
	LoadAll() []savedquery.SavedQuery
	Append(name, sql string) error
}

// Action tells the caller what to do after a key was handled
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// Buffers is the state the session renders
type Buffers struct {
	Input       string
	Output      []string
	Suggestions []string
}

// Machine owns the active mode and the session buffers
type Machine struct {
	keys  KeyMap
	exec  Executor
	store Store

	mode Mode
	buf  Buffers
}

// New returns a machine in SQL entry with the welcome message in the output panel
func New(keys KeyMap, exec Executor, store Store) *Machine {
	return &Machine{
		keys:  keys,
		exec:  exec,
		store: store,
		mode:  SQLEntry{},
		buf: Buffers{
			Output: []string{
				fmt.Sprintf("Enter SQL query and press %s.", keyLabel(keys.Execute)),
				fmt.Sprintf("Press %s to quit.", keyLabel(keys.Quit)),
			},
		},
	}
}

// Mode returns the active mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// Buffers returns a copy of the session buffers
func (m *Machine) Buffers() Buffers {
	return Buffers{
		Input:       m.buf.Input,
		Output:      slices.Clone(m.buf.Output),
		Suggestions: slices.Clone(m.buf.Suggestions),
	}
}

// Keys returns the bindings the machine dispatches on
func (m *Machine) Keys() KeyMap {
	return m.keys
}

// HandleKey applies one key press. The returned error is a persistence
// failure from saving a query; the machine is back in SQL entry when it is
// returned.
func (m *Machine) HandleKey(ctx context.Context, msg tea.KeyMsg) (Action, error) {
	before := m.mode.Name()
	var (
		action Action
		err    error
	)
	switch mode := m.mode.(type) {
	case SQLEntry:
		action = m.handleSQLEntry(ctx, msg)
	case NamingQuery:
		err = m.handleNaming(mode, msg)
	case SelectingSaved:
		m.handleSelecting(mode, msg)
	}
	if after := m.mode.Name(); after != before {
		logger.Debug("mode change", "from", before, "to", after)
	}
	return action, err
}

func (m *Machine) handleSQLEntry(ctx context.Context, msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return ActionQuit

	case key.Matches(msg, m.keys.ListSaved):
		saved := m.store.LoadAll()
		if len(saved) == 0 {
			m.buf.Output = []string{MsgNoSaved}
			return ActionNone
		}
		lines := make([]string, len(saved))
		for i, q := range saved {
			lines[i] = fmt.Sprintf("%d: %s", i+1, q.Name)
		}
		m.buf.Output = lines
		m.mode = SelectingSaved{Candidates: saved}

	case key.Matches(msg, m.keys.Save):
		if strings.TrimSpace(m.buf.Input) == "" {
			return ActionNone
		}
		m.mode = NamingQuery{PendingSQL: m.buf.Input}
		m.buf.Input = ""
		m.buf.Output = []string{MsgNamePrompt}
		m.buf.Suggestions = nil

	case key.Matches(msg, m.keys.Autocomplete):
		if len(m.buf.Suggestions) > 0 {
			m.buf.Input = autocomplete.StripLabel(m.buf.Suggestions[0])
			m.buf.Suggestions = nil
		}

	case key.Matches(msg, m.keys.Execute):
		if strings.TrimSpace(m.buf.Input) == "" {
			return ActionNone
		}
		m.buf.Output = m.exec.Execute(ctx, m.buf.Input)
		m.setInput("")

	case msg.Type == tea.KeyBackspace:
		m.setInput(dropLastRune(m.buf.Input))

	default:
		if text, ok := printable(msg); ok {
			m.setInput(m.buf.Input + text)
		}
	}
	return ActionNone
}

func (m *Machine) handleNaming(mode NamingQuery, msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = SQLEntry{}
		m.buf.Output = []string{MsgSaveCancelled}
		m.setInput("")

	case key.Matches(msg, m.keys.Execute):
		name := strings.TrimSpace(m.buf.Input)
		if name == "" {
			name = DefaultQueryName
		}
		m.mode = SQLEntry{}
		if err := m.store.Append(name, mode.PendingSQL); err != nil {
			m.buf.Output = []string{fmt.Sprintf("Failed to save query '%s': %v", name, err)}
			m.setInput("")
			return fmt.Errorf("save query %q: %w", name, err)
		}
		m.buf.Output = []string{fmt.Sprintf("Saved query as '%s'.", name)}
		m.setInput("")

	case msg.Type == tea.KeyBackspace:
		m.buf.Input = dropLastRune(m.buf.Input)

	default:
		if text, ok := printable(msg); ok {
			m.buf.Input += text
		}
	}
	return nil
}

func (m *Machine) handleSelecting(mode SelectingSaved, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = SQLEntry{}
		m.buf.Output = []string{MsgSelectCancelled}
		m.refreshSuggestions()

	case key.Matches(msg, m.keys.Execute):
		m.mode = SQLEntry{}
		// The store may have changed since the list was shown.
		saved := m.store.LoadAll()
		index, err := strconv.Atoi(mode.NumberBuffer)
		if err != nil || index < 1 || index > len(saved) {
			m.buf.Output = []string{MsgInvalidSelect}
			m.refreshSuggestions()
			return
		}
		chosen := saved[index-1]
		m.buf.Output = []string{fmt.Sprintf("Loaded query '%s'.", chosen.Name)}
		m.setInput(chosen.SQL)

	case msg.Type == tea.KeyBackspace:
		mode.NumberBuffer = dropLastRune(mode.NumberBuffer)
		m.mode = mode
		m.buf.Output = []string{selectPrompt(mode.NumberBuffer)}

	case isDigits(msg):
		mode.NumberBuffer += string(msg.Runes)
		m.mode = mode
		m.buf.Output = []string{selectPrompt(mode.NumberBuffer)}
	}
}

// setInput replaces the SQL entry text and recomputes suggestions
func (m *Machine) setInput(s string) {
	m.buf.Input = s
	m.refreshSuggestions()
}

func (m *Machine) refreshSuggestions() {
	if m.buf.Input == "" {
		m.buf.Suggestions = nil
		return
	}
	m.buf.Suggestions = autocomplete.Suggest(m.buf.Input, m.store.LoadAll())
}

func selectPrompt(buf string) string {
	return "Select query number: " + buf
}

// printable returns the text a key press inserts. Alt chords insert nothing.
// Control characters in pasted text become spaces so input stays on one line.
func printable(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return "", false
		}
		runes := make([]rune, len(msg.Runes))
		for i, r := range msg.Runes {
			if unicode.IsControl(r) {
				r = ' '
			}
			runes[i] = r
		}
		return string(runes), true
	}
	return "", false
}

func isDigits(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return false
	}
	for _, r := range msg.Runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
