// internal/ui/session.go
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezsql/internal/config"
	"github.com/nhath/ezsql/internal/console"
	"github.com/nhath/ezsql/internal/db"
	"github.com/nhath/ezsql/internal/logger"
	"github.com/nhath/ezsql/internal/ui/icons"
)

// SessionError is a failure that ended the interactive session. The terminal
// has already been restored when it is returned.
type SessionError struct {
	Op  string // "terminal" or "save"
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Options configures a session
type Options struct {
	Keys         console.KeyMap
	Theme        config.Theme
	PollInterval time.Duration
	Store        console.Store
	History      HistoryRecorder // nil disables recording
	Source       string          // label for history and the footer
	DriverType   db.DriverType

	// ProgramOptions are applied after the defaults; tests use them to
	// replace the terminal with plain readers and writers.
	ProgramOptions []tea.ProgramOption
}

// Run owns the terminal until the user quits. Raw mode and the alternate
// screen are released on every return path, including panics in Update or View.
func Run(ctx context.Context, runner Runner, opts Options) error {
	InitStyles(opts.Theme)

	exec := NewRecordingExecutor(runner, opts.History, opts.Source)
	machine := console.New(opts.Keys, exec, opts.Store)
	model := NewModel(ctx, machine, opts.PollInterval, statusLabel(opts.Source, icons.ForDriver(opts.DriverType)))

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, opts.ProgramOptions...)
	p := tea.NewProgram(model, programOpts...)

	logger.Info("session started", "source", opts.Source)
	final, err := p.Run()
	logger.Info("session ended", "source", opts.Source)

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return &SessionError{Op: "terminal", Err: err}
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
