package main

import (
	"fmt"

	"github.com/spf13/cobra"

	servicemigrations "service-timetable-assistant/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if cfg.StoreDriver == driverMemory {
			return fmt.Errorf("migrate needs STORE_DRIVER=%s or %s", driverPostgres, driverSQLite)
		}
		logger := newLogger(cfg.LogLevel)

		db, dialect, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := servicemigrations.Up(db, dialect.Name); err != nil {
			return err
		}
		applied, err := servicemigrations.Applied(db, dialect.Name)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "driver", dialect.Name, "count", len(applied))
		return nil
	},
}
