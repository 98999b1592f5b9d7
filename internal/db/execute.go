// internal/db/execute.go
// Execution adapter: runs a statement and turns every row into one display line.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nhath/ezsql/internal/logger"
)

const (
	// ColumnSeparator joins column values within a display line
	ColumnSeparator = " | "
	// NoRowsMessage is the single line shown for an empty result
	NoRowsMessage = "Query returned 0 rows."
	// NullText is the display form of SQL NULL
	NullText = "NULL"
	// BlobText stands in for binary or unrecognized values
	BlobText = "<BLOB>"

	sqlErrorPrefix = "SQL error: "

	dateLayout      = "2006-01-02"
	utcTimeLayout   = "2006-01-02 15:04:05.999999999"
	zonedTimeLayout = "2006-01-02T15:04:05.999999999-07:00"
)

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Outcome is the folded result of a single execution
type Outcome struct {
	Lines    []string
	RowCount int
	Duration time.Duration
	// Err is the prepare or execution failure, already rendered into Lines
	Err error
}

// Execute runs query against p and returns display lines. It never fails:
// SQL errors come back as a single "SQL error: ..." line.
func Execute(ctx context.Context, p Preparer, query string) []string {
	return Run(ctx, p, query).Lines
}

// Run is Execute with timing and row count kept
func Run(ctx context.Context, p Preparer, query string) Outcome {
	start := time.Now()
	out := run(ctx, p, query)
	out.Duration = time.Since(start)
	return out
}

func run(ctx context.Context, p Preparer, query string) Outcome {
	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return failed(err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return failed(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return failed(err)
	}
	types, _ := rows.ColumnTypes()

	var lines []string
	for rows.Next() {
		values, err := scanRow(rows, types, len(columns))
		if err != nil {
			// best effort: a row that cannot be converted is skipped
			logger.Debug("dropping row", "error", err)
			continue
		}
		lines = append(lines, strings.Join(values, ColumnSeparator))
	}
	if err := rows.Err(); err != nil {
		// Nothing came back, so the statement itself failed.
		if len(lines) == 0 {
			return failed(err)
		}
		logger.Debug("dropping remaining rows", "error", err, "kept", len(lines))
	}

	if len(lines) == 0 {
		return Outcome{Lines: []string{NoRowsMessage}}
	}
	return Outcome{Lines: lines, RowCount: len(lines)}
}

func failed(err error) Outcome {
	return Outcome{Lines: []string{sqlErrorPrefix + err.Error()}, Err: err}
}

// scanRow scans the current row and converts every value for display
func scanRow(rows *sql.Rows, types []*sql.ColumnType, n int) ([]string, error) {
	values := make([]any, n)
	valuePtrs := make([]any, n)
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	row := make([]string, n)
	for i, v := range values {
		typeName := ""
		if i < len(types) && types[i] != nil {
			typeName = types[i].DatabaseTypeName()
		}
		row[i] = FormatValue(v, typeName)
	}
	return row, nil
}

// FormatValue converts a driver value to display text. dbType is the column's
// database type name and decides whether raw bytes are text or binary.
func FormatValue(v any, dbType string) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case int64:
		return strconv.FormatInt(val, 10)
	case int, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return fmt.Sprintf("%d", val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case string:
		return strings.ToValidUTF8(val, "�")
	case []byte:
		if isBinaryType(dbType) {
			return BlobText
		}
		return strings.ToValidUTF8(string(val), "�")
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return formatTime(val, dbType)
	default:
		return BlobText
	}
}

// formatTime keeps fractional seconds and any zone offset. A DATE column
// shows the date alone.
func formatTime(t time.Time, dbType string) string {
	switch {
	case strings.EqualFold(strings.TrimSpace(dbType), "DATE"):
		return t.Format(dateLayout)
	case t.Location() == time.UTC:
		return t.Format(utcTimeLayout)
	default:
		return t.Format(zonedTimeLayout)
	}
}

// isBinaryType reports whether raw bytes from a column of this type are a blob.
// An unknown type is treated as binary; SQLite reports no type for blob literals.
func isBinaryType(dbType string) bool {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	if t == "" {
		return true
	}
	return strings.Contains(t, "BLOB") || strings.Contains(t, "BINARY") || t == "BYTEA"
}
