// internal/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// convertedDeclTypes are the declared column types go-sqlite3 turns into
// time.Time or bool on read. The driver matches them lowercased and exactly.
var convertedDeclTypes = map[string]bool{
	"date":      true,
	"datetime":  true,
	"timestamp": true,
	"boolean":   true,
}

// SQLiteDriver implements Driver for SQLite
type SQLiteDriver struct {
	db *sql.DB
}

// sqlitePath strips the URL forms accepted on the command line
func sqlitePath(dsn string) string {
	for _, prefix := range []string{"sqlite://", "file:"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// Connect establishes connection to SQLite
func (d *SQLiteDriver) Connect(params ConnectParams) error {
	// For SQLite, the database string is the filepath
	dsn := sqlitePath(params.Database)
	if dsn == "" {
		return WrapConnectionError(fmt.Errorf("empty database path"))
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return WrapConnectionError(err)
	}
	// One connection: pragmas are per connection and :memory: is per connection too.
	db.SetMaxOpenConns(1)

	// Apply SQLite pragmas for better performance and safety
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma foreign_keys: %w", err))
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 10000"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma busy_timeout: %w", err))
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *SQLiteDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Execute runs a query and folds the outcome into display lines
func (d *SQLiteDriver) Execute(ctx context.Context, query string) []string {
	return d.Run(ctx, query).Lines
}

// Run runs a query through the execution adapter. Values of DATE, DATETIME,
// TIMESTAMP and BOOLEAN columns come back as stored, not as parsed by the driver.
func (d *SQLiteDriver) Run(ctx context.Context, query string) Outcome {
	if d.db == nil {
		return failed(fmt.Errorf("not connected"))
	}
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return failed(err)
	}
	defer conn.Close()
	return Run(ctx, conn, storedValues(ctx, conn, query))
}

// storedValues rewrites a SELECT whose result has converted columns so that
// every column is read as +cN from a CTE. Unary plus keeps the value and
// drops the declared type. Any other statement is returned unchanged.
func storedValues(ctx context.Context, conn *sql.Conn, query string) string {
	rewritten := query
	err := conn.Raw(func(dc any) error {
		sc, ok := dc.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", dc)
		}
		declTypes, err := columnDeclTypes(ctx, sc, query)
		if err != nil {
			return err
		}
		converted := false
		for _, t := range declTypes {
			converted = converted || convertedDeclTypes[t]
		}
		if !converted {
			return nil
		}

		wrapped := wrapColumns(query, len(declTypes))
		// Prepared only: RETURNING and multi-statement input fail here and run as typed.
		if _, err := columnDeclTypes(ctx, sc, wrapped); err != nil {
			return err
		}
		rewritten = wrapped
		return nil
	})
	if err != nil {
		return query
	}
	return rewritten
}

// columnDeclTypes prepares query without stepping it and returns the
// lowercased declared type of each result column.
func columnDeclTypes(ctx context.Context, sc *sqlite3.SQLiteConn, query string) ([]string, error) {
	stmt, err := sc.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ss, ok := stmt.(*sqlite3.SQLiteStmt)
	if !ok {
		return nil, fmt.Errorf("unexpected statement %T", stmt)
	}
	rows, err := ss.QueryContext(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sr, ok := rows.(*sqlite3.SQLiteRows)
	if !ok {
		return nil, fmt.Errorf("unexpected rows %T", rows)
	}
	return sr.DeclTypes(), nil
}

func wrapColumns(query string, n int) string {
	names := make([]string, n)
	plus := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("c%d", i)
		plus[i] = "+" + names[i]
	}
	body := strings.TrimRight(strings.TrimSpace(query), "; \t\r\n")
	// The newline keeps a trailing -- comment from swallowing the paren.
	return fmt.Sprintf("WITH ezsql_stored(%s) AS (\n%s\n) SELECT %s FROM ezsql_stored",
		strings.Join(names, ", "), body, strings.Join(plus, ", "))
}

// Query runs a query and returns the full result set
func (d *SQLiteDriver) Query(ctx context.Context, query string) (*QueryResult, error) {
	return queryAll(ctx, d.db, query)
}

// Ping checks if database is reachable
func (d *SQLiteDriver) Ping(ctx context.Context) error {
	return ping(ctx, d.db)
}

// Type returns the driver type
func (d *SQLiteDriver) Type() DriverType {
	return SQLite
}

// GetTables returns a list of tables
func (d *SQLiteDriver) GetTables(ctx context.Context) ([]string, error) {
	return listStrings(ctx, d.db,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
}

// GetColumns returns detailed column metadata for a table
func (d *SQLiteDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", d.QuoteIdentifier(tableName))
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var cid int
		var name string
		var dataType string
		var notNull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dfltValue, &pk); err != nil {
			return nil, WrapQueryError(err)
		}

		key := ""
		if pk > 0 {
			key = "PRI"
		}

		columns = append(columns, Column{
			Name:     name,
			Type:     dataType,
			Nullable: notNull == 0,
			Default:  dfltValue.String,
			Key:      key,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	if len(columns) == 0 {
		return nil, WrapQueryError(fmt.Errorf("no such table: %s", tableName))
	}
	return columns, nil
}

// QuoteIdentifier quotes a table or column name
func (d *SQLiteDriver) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
