package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/config"
	"github.com/nhath/ezsql/internal/db"
	"github.com/nhath/ezsql/internal/history"
	"github.com/nhath/ezsql/internal/logger"
)

type queryOptions struct {
	csvFile  string
	jsonFile string
	explain  bool
	timing   bool
}

// exportRecord is one row in a JSON export
type exportRecord struct {
	Values []string `json:"values"`
}

func newQueryCommand() *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query <target> <sql>",
		Short: "Run one statement and print the result",
		Example: `  ezsql query mydb.sqlite "SELECT * FROM users"
  ezsql query mydb.sqlite "SELECT * FROM users" --csv users.csv
  ezsql query mydb.sqlite "SELECT * FROM users WHERE age > 30" --explain
  ezsql query staging "SELECT count(*) FROM orders" --timing`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.csvFile, "csv", "", "export the result to a CSV file")
	cmd.Flags().StringVar(&opts.jsonFile, "json", "", "export the result to a JSON file")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show the query plan instead of running the query")
	cmd.Flags().BoolVar(&opts.timing, "timing", false, "print execution time and record it in history")

	return cmd
}

func runQuery(cmd *cobra.Command, target, query string, opts queryOptions) error {
	cfg := getConfig(cmd)

	conn, err := connect(cfg, target)
	if err != nil {
		return err
	}
	defer conn.Close()

	if opts.explain {
		query = explainPrefix(conn.Type()) + query
	}

	executedAt := time.Now()
	res, err := conn.Query(cmd.Context(), query)
	if opts.timing {
		recordTiming(cfg, conn.Source, query, res, err, executedAt)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderResult(out, res)

	if opts.csvFile != "" {
		if err := exportCSV(opts.csvFile, res); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		fmt.Fprintf(out, "Exported %d rows to %s\n", res.RowCount, opts.csvFile)
	}
	if opts.jsonFile != "" {
		if err := exportJSON(opts.jsonFile, res); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		fmt.Fprintf(out, "Exported %d rows to %s\n", res.RowCount, opts.jsonFile)
	}
	if opts.timing {
		fmt.Fprintf(out, "Query executed in: %d ms\n", res.ExecTime.Milliseconds())
	}
	return nil
}

func explainPrefix(t db.DriverType) string {
	if t == db.SQLite {
		return "EXPLAIN QUERY PLAN "
	}
	return "EXPLAIN "
}

func renderResult(w io.Writer, res *db.QueryResult) {
	if len(res.Rows) == 0 {
		fmt.Fprintln(w, db.NoRowsMessage)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range res.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}
	t.Render()
}

func exportCSV(path string, res *db.QueryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(res.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(res.Rows); err != nil {
		return err
	}
	return f.Close()
}

func exportJSON(path string, res *db.QueryResult) error {
	records := make([]exportRecord, len(res.Rows))
	for i, r := range res.Rows {
		records[i] = exportRecord{Values: r}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// recordTiming adds a --timing run to history. Failures only reach the log.
func recordTiming(cfg *config.Config, source, query string, res *db.QueryResult, runErr error, executedAt time.Time) {
	hs := openHistory(cfg)
	if hs == nil {
		return
	}
	defer hs.Close()

	out := db.Outcome{Err: runErr}
	if res != nil {
		out.RowCount = res.RowCount
		out.Duration = res.ExecTime
	} else {
		out.Duration = time.Since(executedAt)
	}
	if err := hs.Add(history.FromOutcome(source, query, out, executedAt)); err != nil {
		logger.Warn("recording history failed", "error", err)
	}
}
