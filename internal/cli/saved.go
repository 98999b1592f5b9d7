package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/console"
	"github.com/nhath/ezsql/internal/savedquery"
)

func newSavedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List saved queries",
		Long: `List the saved queries in the order they were saved. The numbers are
the ones the console's saved-query list accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := savedquery.NewStore(getConfig(cmd).SavedQueriesFile)
			saved := store.LoadAll()

			w := cmd.OutOrStdout()
			if len(saved) == 0 {
				fmt.Fprintln(w, console.MsgNoSaved)
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Name", "SQL"})
			for i, q := range saved {
				t.AppendRow(table.Row{i + 1, q.Name, q.SQL})
			}
			t.Render()
			return nil
		},
	}
}
