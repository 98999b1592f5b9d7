// internal/history/store.go
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// Store manages execution history persistence
type Store struct {
	db *sql.DB
}

// DefaultPath returns the XDG data path of the history database
func DefaultPath() (string, error) {
	return xdg.DataFile("ezsql/history.db")
}

// Open opens (creating if needed) the history database at path and prunes
// entries older than retentionDays. A retention of zero or less keeps everything.
func Open(path string, retentionDays int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	// Apply SQLite pragmas
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	// Create table and indexes
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			query TEXT NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_message TEXT,
			preview TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_history_executed_at ON history(executed_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	store := &Store{db: db}
	if retentionDays > 0 {
		if err := store.cleanup(retentionDays); err != nil {
			db.Close()
			return nil, fmt.Errorf("prune history: %w", err)
		}
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new execution into history
func (s *Store) Add(entry *Entry) error {
	query := `
		INSERT INTO history (source, query, executed_at, duration_ms, row_count, status, error_message, preview)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.Exec(query,
		entry.Source,
		entry.Query,
		entry.ExecutedAt.UTC(),
		entry.DurationMs,
		entry.RowCount,
		entry.Status,
		entry.ErrorMessage,
		entry.Preview,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries, newest first
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, source, query, executed_at, duration_ms, row_count, status, error_message, preview
		FROM history
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search finds history entries by query substring
func (s *Store) Search(querySubstr string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, source, query, executed_at, duration_ms, row_count, status, error_message, preview
		FROM history
		WHERE query LIKE ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, "%"+querySubstr+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// scanEntries scans rows into an Entry slice
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var errMsg, preview sql.NullString
		err := rows.Scan(&e.ID, &e.Source, &e.Query, &e.ExecutedAt,
			&e.DurationMs, &e.RowCount, &e.Status, &errMsg, &preview)
		if err != nil {
			return nil, err
		}
		e.ErrorMessage = errMsg.String
		e.Preview = preview.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// cleanup removes history entries older than the retention window
func (s *Store) cleanup(retentionDays int) error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE executed_at < datetime('now', ?)
	`, fmt.Sprintf("-%d days", retentionDays))
	return err
}

// Count returns the total number of history entries
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count)
	return count, err
}
