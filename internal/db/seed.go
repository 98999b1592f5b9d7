// internal/db/seed.go
package db

import (
	"context"
	"fmt"
)

var seedSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		age INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price REAL
	)`,
}

var seedData = []string{
	`INSERT INTO users (name, email, age) VALUES
		('Alice', 'alice@example.com', 30),
		('Bob', 'bob@example.com', 25),
		('Charlie', 'charlie@example.com', 40)`,
	`INSERT INTO products (name, price) VALUES
		('Laptop', 1200.50),
		('Mouse', 25.99),
		('Keyboard', 75.00)`,
}

// Seed creates the sample users and products tables in the SQLite database at
// path. Rows are only inserted into an empty users table; seeded reports whether
// they were.
func Seed(ctx context.Context, path string) (seeded bool, err error) {
	d := &SQLiteDriver{}
	if err := d.Connect(ConnectParams{Database: path}); err != nil {
		return false, err
	}
	defer d.Close()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return false, WrapQueryError(err)
	}
	defer tx.Rollback()

	for _, stmt := range seedSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, WrapQueryError(fmt.Errorf("create schema: %w", err))
		}
	}

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&existing); err != nil {
		return false, WrapQueryError(err)
	}
	if existing > 0 {
		return false, tx.Commit()
	}

	for _, stmt := range seedData {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, WrapQueryError(fmt.Errorf("insert sample rows: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return false, WrapQueryError(err)
	}
	return true, nil
}
