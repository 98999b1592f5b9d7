package console

import "github.com/nhath/ezsql/internal/savedquery"

// Mode is the active input mode. Exactly one is active at a time; the set
// of variants is closed to this package.
type Mode interface {
	Name() string
	isMode()
}

// SQLEntry is the default mode: typed text is SQL
type SQLEntry struct{}

// NamingQuery collects a name for PendingSQL before it is saved
type NamingQuery struct {
	PendingSQL string
}

// SelectingSaved collects a 1-based index into the saved query list.
// Candidates is the list as it was when the mode was entered.
type SelectingSaved struct {
	Candidates   []savedquery.SavedQuery
	NumberBuffer string
}

func (SQLEntry) Name() string       { return "sql" }
func (NamingQuery) Name() string    { return "naming" }
func (SelectingSaved) Name() string { return "selecting" }

func (SQLEntry) isMode()       {}
func (NamingQuery) isMode()    {}
func (SelectingSaved) isMode() {}
