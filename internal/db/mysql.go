// internal/db/mysql.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDriver implements Driver for MySQL
type MySQLDriver struct {
	db *sql.DB
}

// mysqlDSN builds user:password@tcp(host:port)/dbname through the driver's own formatter
func mysqlDSN(params ConnectParams) string {
	port := params.Port
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", params.Host, port)
	cfg.DBName = params.Database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Connect establishes connection to MySQL
func (d *MySQLDriver) Connect(params ConnectParams) error {
	db, err := sql.Open("mysql", mysqlDSN(params))
	if err != nil {
		return WrapConnectionError(err)
	}

	// Configure connection pooling
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection immediately (sql.Open is lazy)
	if err := db.Ping(); err != nil {
		db.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *MySQLDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Execute runs a query and folds the outcome into display lines
func (d *MySQLDriver) Execute(ctx context.Context, query string) []string {
	return d.Run(ctx, query).Lines
}

// Run runs a query through the execution adapter
func (d *MySQLDriver) Run(ctx context.Context, query string) Outcome {
	if d.db == nil {
		return failed(fmt.Errorf("not connected"))
	}
	return Run(ctx, d.db, query)
}

// Query runs a query and returns the full result set
func (d *MySQLDriver) Query(ctx context.Context, query string) (*QueryResult, error) {
	return queryAll(ctx, d.db, query)
}

// Ping checks if database is reachable
func (d *MySQLDriver) Ping(ctx context.Context) error {
	return ping(ctx, d.db)
}

// Type returns the driver type
func (d *MySQLDriver) Type() DriverType {
	return MySQL
}

// GetTables returns a list of tables in the current database
func (d *MySQLDriver) GetTables(ctx context.Context) ([]string, error) {
	return listStrings(ctx, d.db,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name")
}

// GetColumns returns detailed column metadata for a table
func (d *MySQLDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			IS_NULLABLE = 'YES',
			IFNULL(COLUMN_DEFAULT, ''),
			COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = ? AND TABLE_SCHEMA = DATABASE()
		ORDER BY ORDINAL_POSITION`

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
		return nil, WrapQueryError(fmt.Errorf("table '%s' doesn't exist", tableName))
	}
	return columns, nil
}

// QuoteIdentifier quotes a table or column name
func (d *MySQLDriver) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
