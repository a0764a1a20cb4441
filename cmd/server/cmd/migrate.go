package cmd

import (
	"carnet/internal/infrastructure/storage"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := storage.Migrate(cfg); err != nil {
			return err
		}
		log.Info("database is up to date", "driver", cfg.DB.Driver)
		return nil
	},
}
