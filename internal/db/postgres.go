// internal/db/postgres.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/lib/pq"
)

// PostgresDriver implements Driver for PostgreSQL
type PostgresDriver struct {
	db *sql.DB
}

// postgresDSN builds a connection URL; url.URL takes care of escaping credentials
func postgresDSN(params ConnectParams) string {
	port := params.Port
	if port == 0 {
		port = 5432
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(params.User, params.Password),
		Host:     params.Host + ":" + strconv.Itoa(port),
		Path:     "/" + params.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Connect establishes connection to PostgreSQL
func (d *PostgresDriver) Connect(params ConnectParams) error {
	db, err := sql.Open("postgres", postgresDSN(params))
	if err != nil {
		return WrapConnectionError(err)
	}

	// Configure connection pooling
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *PostgresDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Execute runs a query and folds the outcome into display lines
func (d *PostgresDriver) Execute(ctx context.Context, query string) []string {
	return d.Run(ctx, query).Lines
}

// Run runs a query through the execution adapter
func (d *PostgresDriver) Run(ctx context.Context, query string) Outcome {
	if d.db == nil {
		return failed(fmt.Errorf("not connected"))
	}
	return Run(ctx, d.db, query)
}

// Query runs a query and returns the full result set
func (d *PostgresDriver) Query(ctx context.Context, query string) (*QueryResult, error) {
	return queryAll(ctx, d.db, query)
}

// Ping checks if database is reachable
func (d *PostgresDriver) Ping(ctx context.Context) error {
	return ping(ctx, d.db)
}

// Type returns the driver type
func (d *PostgresDriver) Type() DriverType {
	return Postgres
}

// GetTables returns a list of tables in all non-system schemas
func (d *PostgresDriver) GetTables(ctx context.Context) ([]string, error) {
	return listStrings(ctx, d.db, `
		SELECT n.nspname || '.' || c.relname
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
		AND c.relkind IN ('r', 'v', 'm', 'f', 'p')
		ORDER BY 1`)
}

// GetColumns returns detailed column metadata for a table. tableName may be
// schema-qualified or resolved through the search path.
func (d *PostgresDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	query := `
		SELECT
			a.attname AS column_name,
			format_type(a.atttypid, a.atttypmod) AS data_type,
			NOT a.attnotnull AS nullable,
			COALESCE(pg_get_expr(d.adbin, d.adrelid), '') AS default_value,
			COALESCE(
				(SELECT 'PRI' FROM pg_index i WHERE i.indrelid = a.attrelid AND a.attnum = ANY(i.indkey::int2[]) AND i.indisprimary LIMIT 1),
				(SELECT 'UNI' FROM pg_index i WHERE i.indrelid = a.attrelid AND a.attnum = ANY(i.indkey::int2[]) AND i.indisunique AND NOT i.indisprimary LIMIT 1),
				''
			) AS key_type
		FROM pg_attribute a
		LEFT JOIN pg_attrdef d ON a.attrelid = d.adrelid AND a.attnum = d.adnum
		WHERE a.attrelid = to_regclass($1::text) AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum`

	rows, err := d.db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable, &col.Default, &col.Key); err != nil {
			return nil, WrapQueryError(err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	if len(columns) == 0 {
		return nil, WrapQueryError(fmt.Errorf("relation %q does not exist", tableName))
	}
	return columns, nil
}

// QuoteIdentifier quotes a table or column name
func (d *PostgresDriver) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}
