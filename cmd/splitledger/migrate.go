package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// migrateCommand applies pending schema migrations and reports the version.
func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the ledger database to the latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Database.Path

			if err := sqlite.Migrate(path, a.busyTimeoutMS()); err != nil {
				return fmt.Errorf("could not migrate %s: %w", path, err)
			}

			version, dirty, err := sqlite.SchemaVersion(path, a.busyTimeoutMS())
			if err != nil {
				return err
			}

			a.logger.Info("database migrated", "path", path, "version", version, "dirty", dirty)
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)

			return nil
		},
	}
}
