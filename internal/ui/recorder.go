// internal/ui/recorder.go
package ui

import (
	"context"
	"time"

	"github.com/nhath/ezsql/internal/db"
	"github.com/nhath/ezsql/internal/history"
	"github.com/nhath/ezsql/internal/logger"
)

// Runner executes one statement; every db.Driver is a Runner
type Runner interface {
	Run(ctx context.Context, query string) db.Outcome
}

// HistoryRecorder stores executions; *history.Store implements it
type HistoryRecorder interface {
	Add(entry *history.Entry) error
}

// RecordingExecutor runs statements and logs each one to history
type RecordingExecutor struct {
	runner  Runner
	history HistoryRecorder
	source  string
	now     func() time.Time
}

// NewRecordingExecutor wraps runner. rec may be nil.
func NewRecordingExecutor(runner Runner, rec HistoryRecorder, source string) *RecordingExecutor {
	return &RecordingExecutor{runner: runner, history: rec, source: source, now: time.Now}
}

// Execute runs query and returns its display lines. History failures are
// logged and never reach the screen.
func (r *RecordingExecutor) Execute(ctx context.Context, query string) []string {
	out := r.runner.Run(ctx, query)
	if out.Err != nil {
		logger.Warn("sql error", "query", query, "error", out.Err)
	} else {
		logger.Debug("query executed", "query", query, "duration", out.Duration, "rows", out.RowCount)
	}

	if r.history != nil {
		entry := history.FromOutcome(r.source, query, out, r.now())
		if err := r.history.Add(entry); err != nil {
			logger.Warn("recording history failed", "error", err)
		}
	}
	return out.Lines
}
