package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezsql/internal/db"
)

func openTemp(t *testing.T, retentionDays int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "history.db")
	s, err := Open(path, retentionDays)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestAddAndList(t *testing.T) {
	s, _ := openTemp(t, 90)
	now := time.Now()

	first := FromOutcome("my.db", "SELECT 1", db.Outcome{Lines: []string{"1"}, RowCount: 1, Duration: 3 * time.Millisecond}, now.Add(-time.Minute))
	second := FromOutcome("my.db", "SELECT * FROM nope", db.Outcome{
		Lines: []string{"SQL error: no such table: nope"},
		Err:   errors.New("no such table: nope"),
	}, now)

	require.NoError(t, s.Add(first))
	require.NoError(t, s.Add(second))
	assert.NotZero(t, first.ID)

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "SELECT * FROM nope", entries[0].Query)
	assert.Equal(t, StatusError, entries[0].Status)
	assert.Equal(t, "no such table: nope", entries[0].ErrorMessage)
	assert.Empty(t, entries[0].Preview)

	assert.Equal(t, StatusSuccess, entries[1].Status)
	assert.Equal(t, int64(3), entries[1].DurationMs)
	assert.Equal(t, 1, entries[1].RowCount)
	assert.Equal(t, "1", entries[1].Preview)
	assert.WithinDuration(t, now.Add(-time.Minute), entries[1].ExecutedAt, time.Second)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	limited, err := s.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSearch(t *testing.T) {
	s, _ := openTemp(t, 0)
	for _, q := range []string{"SELECT * FROM users", "SELECT * FROM products", "DELETE FROM users"} {
		require.NoError(t, s.Add(FromOutcome("x", q, db.Outcome{}, time.Now())))
	}

	found, err := s.Search("users", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestRetentionPrunesOnOpen(t *testing.T) {
	s, path := openTemp(t, 90)
	require.NoError(t, s.Add(FromOutcome("x", "old", db.Outcome{}, time.Now().AddDate(0, 0, -200))))
	require.NoError(t, s.Add(FromOutcome("x", "recent", db.Outcome{}, time.Now())))
	require.NoError(t, s.Close())

	reopened, err := Open(path, 90)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "recent", entries[0].Query)
}

func TestPreviewKeepsFirstLines(t *testing.T) {
	e := FromOutcome("x", "q", db.Outcome{Lines: []string{"a", "b", "c", "d"}, RowCount: 4}, time.Now())
	assert.Equal(t, "a\nb\nc", e.Preview)
}

func TestQueryPreview(t *testing.T) {
	e := &Entry{Query: "SELECT *\n  FROM users\n WHERE id = 1"}
	assert.Equal(t, "SELECT * FROM users WHERE id = 1", e.QueryPreview(50))
	assert.Equal(t, "SELECT *...", e.QueryPreview(11))
}
