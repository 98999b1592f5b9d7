package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/history"
)

const queryPreviewLen = 60

func newHistoryCommand() *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent query executions",
		Example: `  ezsql history
  ezsql history --limit 50
  ezsql history --search users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			path, err := historyPath()
			if err != nil {
				return err
			}
			hs, err := history.Open(path, cfg.HistoryRetentionDays)
			if err != nil {
				return err
			}
			defer hs.Close()

			var entries []history.Entry
			if search != "" {
				entries, err = hs.Search(search, limit)
			} else {
				entries, err = hs.List(limit)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			renderHistory(w, entries)
			if len(entries) > 0 {
				total, err := hs.Count()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Showing %d of %s entries\n", len(entries), humanize.Comma(int64(total)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show queries containing this text")

	return cmd
}

func renderHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Source", "Status", "Time", "Rows", "Query"})
	for _, e := range entries {
		status := e.Status
		if e.Status == history.StatusError && e.ErrorMessage != "" {
			status = "error: " + e.ErrorMessage
		}
		t.AppendRow(table.Row{
			humanize.Time(e.ExecutedAt),
			e.Source,
			status,
			fmt.Sprintf("%d ms", e.DurationMs),
			humanize.Comma(int64(e.RowCount)),
			e.QueryPreview(queryPreviewLen),
		})
	}
	t.Render()
}
