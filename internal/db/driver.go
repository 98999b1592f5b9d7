// internal/db/driver.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DriverType represents supported database types
type DriverType string

const (
	Postgres DriverType = "postgres"
	MySQL    DriverType = "mysql"
	SQLite   DriverType = "sqlite"
)

// Column represents table column metadata
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Key      string // PRI, UNI, MUL
}

// ConnectParams holds database connection details
type ConnectParams struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Driver defines the interface for database operations
type Driver interface {
	Connect(params ConnectParams) error
	Close() error
	// Execute runs query and folds every outcome, including failures, into display lines.
	Execute(ctx context.Context, query string) []string
	// Run is Execute with row count and error exposed for callers that record history.
	Run(ctx context.Context, query string) Outcome
	// Query returns a full result set with headers; errors are returned, not folded.
	Query(ctx context.Context, query string) (*QueryResult, error)
	Ping(ctx context.Context) error
	Type() DriverType
	GetTables(ctx context.Context) ([]string, error)
	GetColumns(ctx context.Context, tableName string) ([]Column, error)
	QuoteIdentifier(name string) string
}

// QueryResult contains query execution results
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	ExecTime time.Duration
	RowCount int
}

// NewDriver creates a new driver instance by type
func NewDriver(driverType DriverType) (Driver, error) {
	switch driverType {
	case Postgres:
		return &PostgresDriver{}, nil
	case MySQL:
		return &MySQLDriver{}, nil
	case SQLite:
		return &SQLiteDriver{}, nil
	default:
		return nil, fmt.Errorf("unknown driver type: %s", driverType)
	}
}

// Open creates and connects a driver in one step
func Open(driverType DriverType, params ConnectParams) (Driver, error) {
	d, err := NewDriver(driverType)
	if err != nil {
		return nil, err
	}
	if err := d.Connect(params); err != nil {
		return nil, err
	}
	return d, nil
}

// queryAll executes a query and collects every row, failing on the first error
func queryAll(ctx context.Context, db *sql.DB, query string) (*QueryResult, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, WrapQueryError(err)
	}
	types, _ := rows.ColumnTypes()

	var results [][]string
	for rows.Next() {
		row, err := scanRow(rows, types, len(columns))
		if err != nil {
			return nil, WrapQueryError(err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}

	return &QueryResult{
		Columns:  columns,
		Rows:     results,
		ExecTime: time.Since(start),
		RowCount: len(results),
	}, nil
}

// listStrings runs a single-column query and returns its values
func listStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapQueryError(err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ping checks a possibly-nil connection
func ping(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return WrapConnectionError(fmt.Errorf("not connected"))
	}
	return db.PingContext(ctx)
}
