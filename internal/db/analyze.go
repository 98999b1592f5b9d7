// internal/db/analyze.go
package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ColumnStats holds display-ready aggregates for one numeric column.
// Empty tables yield NULL for every aggregate.
type ColumnStats struct {
	Column string
	Min    string
	Max    string
	Avg    string
}

// TableAnalysis is the result of Analyze
type TableAnalysis struct {
	Table    string
	Columns  []Column
	Stats    []ColumnStats
	RowCount int64
}

// numericTypes are base type names that get min/max/avg statistics
var numericTypes = map[string]bool{
	"INTEGER": true, "INT": true, "TINYINT": true, "SMALLINT": true, "MEDIUMINT": true,
	"BIGINT": true, "INT2": true, "INT4": true, "INT8": true, "SERIAL": true, "BIGSERIAL": true,
	"REAL": true, "FLOAT": true, "FLOAT4": true, "FLOAT8": true, "DOUBLE": true,
	"NUMERIC": true, "DECIMAL": true,
}

// isNumericType reports whether a declared column type is numeric.
// Modifiers are ignored: "int(11) unsigned" and "numeric(10,2)" both count.
func isNumericType(declared string) bool {
	t := strings.ToUpper(strings.TrimSpace(declared))
	if i := strings.IndexAny(t, "( "); i >= 0 {
		t = t[:i]
	}
	return numericTypes[t]
}

// Analyze reports a table's schema, per-column numeric statistics and row count
func Analyze(ctx context.Context, d Driver, table string) (*TableAnalysis, error) {
	columns, err := d.GetColumns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read schema of %s: %w", table, err)
	}

	quotedTable := quoteQualified(d, table)
	result := &TableAnalysis{Table: table, Columns: columns}

	for _, col := range columns {
		if !isNumericType(col.Type) {
			continue
		}
		name := d.QuoteIdentifier(col.Name)
		q := fmt.Sprintf("SELECT MIN(%s), MAX(%s), AVG(%s) FROM %s", name, name, name, quotedTable)
		res, err := d.Query(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", col.Name, err)
		}
		stats := ColumnStats{Column: col.Name, Min: NullText, Max: NullText, Avg: NullText}
		if len(res.Rows) == 1 && len(res.Rows[0]) == 3 {
			stats.Min, stats.Max, stats.Avg = res.Rows[0][0], res.Rows[0][1], res.Rows[0][2]
		}
		result.Stats = append(result.Stats, stats)
	}

	res, err := d.Query(ctx, "SELECT COUNT(*) FROM "+quotedTable)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	if len(res.Rows) == 1 && len(res.Rows[0]) == 1 {
		result.RowCount, err = strconv.ParseInt(res.Rows[0][0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
	}
	return result, nil
}

// quoteQualified quotes each part of a possibly schema-qualified name
func quoteQualified(d Driver, table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
