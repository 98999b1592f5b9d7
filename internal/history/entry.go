// internal/history/entry.go
package history

import (
	"strings"
	"time"

	"github.com/nhath/ezsql/internal/db"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	previewLines = 3
)

// Entry represents a single query execution in history
type Entry struct {
	ID           int64
	Source       string // profile name or connection kind
	Query        string
	ExecutedAt   time.Time
	DurationMs   int64
	RowCount     int
	Status       string `json:"status"` // "success", "error"
	ErrorMessage string `json:"error_message,omitempty"`
	Preview      string `json:"preview,omitempty"` // First 3 output lines
}

// FromOutcome builds an entry for an execution that finished at executedAt
func FromOutcome(source, query string, out db.Outcome, executedAt time.Time) *Entry {
	e := &Entry{
		Source:     source,
		Query:      query,
		ExecutedAt: executedAt.UTC(),
		DurationMs: out.Duration.Milliseconds(),
		RowCount:   out.RowCount,
		Status:     StatusSuccess,
	}
	if out.Err != nil {
		e.Status = StatusError
		e.ErrorMessage = out.Err.Error()
		return e
	}
	lines := out.Lines
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	e.Preview = strings.Join(lines, "\n")
	return e
}

// QueryPreview returns a truncated single-line version of the query
func (e *Entry) QueryPreview(maxLen int) string {
	q := strings.Join(strings.Fields(e.Query), " ")
	if len(q) > maxLen {
		return q[:maxLen-3] + "..."
	}
	return q
}
