package cli

import (
	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/console"
	"github.com/nhath/ezsql/internal/savedquery"
	"github.com/nhath/ezsql/internal/ui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <target>",
		Short: "Start the interactive SQL console",
		Long: `Start the interactive SQL console against a database.

The target is a profile name from the config, a connection string
(postgres://, mysql://, sqlite://, file:) or a path to a SQLite file.`,
		Example: `  ezsql tui mydb.sqlite
  ezsql tui postgres://app@localhost/app
  ezsql tui staging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)

			conn, err := connect(cfg, args[0])
			if err != nil {
				return err
			}
			defer conn.Close()

			opts := ui.Options{
				Keys:         console.NewKeyMap(cfg.Keys),
				Theme:        cfg.Theme,
				PollInterval: cfg.PollInterval,
				Store:        savedquery.NewStore(cfg.SavedQueriesFile),
				Source:       conn.Source,
				DriverType:   conn.Type(),
			}
			// assigned only when open: a nil *history.Store in the interface would not be nil
			if hs := openHistory(cfg); hs != nil {
				defer hs.Close()
				opts.History = hs
			}

			return ui.Run(cmd.Context(), conn, opts)
		},
	}
}
