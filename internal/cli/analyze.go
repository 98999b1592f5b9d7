package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/db"
)

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <target> [table]",
		Short: "Show a table's schema, numeric column statistics and row count",
		Long: `Show a table's schema, min/max/avg for its numeric columns and its row
count. Without a table, list the tables in the database.`,
		Example: `  ezsql analyze mydb.sqlite
  ezsql analyze mydb.sqlite users`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(getConfig(cmd), args[0])
			if err != nil {
				return err
			}
			defer conn.Close()

			if len(args) == 1 {
				tables, err := conn.GetTables(cmd.Context())
				if err != nil {
					return err
				}
				renderTables(cmd.OutOrStdout(), tables)
				return nil
			}

			analysis, err := db.Analyze(cmd.Context(), conn, args[1])
			if err != nil {
				return err
			}
			renderAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
}

func renderTables(w io.Writer, tables []string) {
	if len(tables) == 0 {
		fmt.Fprintln(w, "No tables.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table"})
	for _, name := range tables {
		t.AppendRow(table.Row{name})
	}
	t.Render()
}

func renderAnalysis(w io.Writer, a *db.TableAnalysis) {
	fmt.Fprintf(w, "Table: %s\n", a.Table)

	schema := table.NewWriter()
	schema.SetOutputMirror(w)
	schema.SetStyle(table.StyleLight)
	schema.AppendHeader(table.Row{"Column", "Type", "Nullable", "Key"})
	for _, col := range a.Columns {
		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}
		schema.AppendRow(table.Row{col.Name, col.Type, nullable, col.Key})
	}
	schema.Render()

	if len(a.Stats) > 0 {
		fmt.Fprintln(w, "Numeric columns:")
		stats := table.NewWriter()
		stats.SetOutputMirror(w)
		stats.SetStyle(table.StyleLight)
		stats.AppendHeader(table.Row{"Column", "Min", "Max", "Avg"})
		for _, s := range a.Stats {
			stats.AppendRow(table.Row{s.Column, s.Min, s.Max, s.Avg})
		}
		stats.Render()
	}

	fmt.Fprintf(w, "Total rows: %d\n", a.RowCount)
}
