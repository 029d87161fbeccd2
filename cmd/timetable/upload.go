package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"service-timetable-assistant/internal/service"
	"service-timetable-assistant/internal/timetablefile"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Replace weekday documents from a JSON or YAML timetable file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if cfg.StoreDriver == driverMemory {
			return fmt.Errorf("upload needs STORE_DRIVER=%s or %s", driverPostgres, driverSQLite)
		}
		logger := newLogger(cfg.LogLevel)

		timetable, err := timetablefile.Load(args[0])
		if err != nil {
			return err
		}

		b, err := openBackend(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		defer b.close()

		if err := service.NewTimetableService(b.txManager).Import(cmd.Context(), timetable); err != nil {
			return fmt.Errorf("upload timetable: %w", err)
		}

		for day, entries := range timetable {
			logger.Info("uploaded timetable", "day", day, "classes", len(entries))
		}
		return nil
	},
}
