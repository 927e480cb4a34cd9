package main

import (
	"fmt"

	"github.com/danielledeleo/createpage/internal/storage"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := storage.Open(conf.DatabaseFile)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := storage.RunMigrations(db); err != nil {
				return err
			}
			version, err := storage.SchemaVersion(db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
