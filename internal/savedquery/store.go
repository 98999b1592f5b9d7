// Package savedquery persists named SQL snippets as a JSON array file:
//
//	[{"name": "all users", "sql": "SELECT * FROM users"}]
package savedquery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhath/ezsql/internal/logger"
)

// SavedQuery is one named statement
type SavedQuery struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// Store reads and appends saved queries at a fixed path.
// It holds no state between calls; every call goes to the file.
type Store struct {
	path string
}

// NewStore returns a store backed by path. The file need not exist.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// LoadAll returns every saved query in file order. A missing, unreadable or
// malformed file yields an empty list.
func (s *Store) LoadAll() []SavedQuery {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("reading saved queries", "path", s.path, "error", err)
		}
		return nil
	}

	var queries []SavedQuery
	if err := json.Unmarshal(data, &queries); err != nil {
		logger.Debug("parsing saved queries", "path", s.path, "error", err)
		return nil
	}
	return queries
}

// Append adds a query to the end of the list and rewrites the file. Names are
// not required to be unique.
func (s *Store) Append(name, sql string) error {
	queries := append(s.LoadAll(), SavedQuery{Name: name, SQL: sql})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(queries); err != nil {
		return fmt.Errorf("encode saved queries: %w", err)
	}

	if err := writeFileAtomic(s.path, bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// writeFileAtomic writes through a temp file in the same directory and renames
// it over path, so readers see either the old or the new list.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
