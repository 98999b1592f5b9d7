package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/db"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <path>",
		Short: "Create a sample SQLite database",
		Long: `Create the users and products tables in the SQLite database at path
and fill them with sample rows. Running it again leaves existing rows alone.`,
		Example: `  ezsql seed mydb.sqlite
  ezsql tui mydb.sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := db.Seed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "Created sample database at %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Sample database at %s already has data\n", args[0])
			}
			return nil
		},
	}
}
