package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"service-timetable-assistant/internal/app"
	"service-timetable-assistant/internal/timetablefile"
)

var seedFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fulfillment webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&seedFile, "seed", "", "JSON or YAML timetable imported before serving")
}

func runServer(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	logger.Debug("config loaded",
		"store_driver", cfg.StoreDriver,
		"http_addr", cfg.HTTPAddr,
		"admin_routes", cfg.AdminToken != "",
		"context_lifespan", cfg.ContextLifespan,
		"record_interactions", cfg.RecordInteractions,
		"db_max_open", cfg.DBMaxOpenConns,
		"db_max_idle", cfg.DBMaxIdleConns,
		"db_conn_max_lifetime", cfg.DBConnMaxLifetime,
	)

	if parent == nil {
		parent = context.Background()
	}
	shutdownCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(shutdownCtx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()

	application := app.New(app.Options{
		Store:              b.store,
		TxManager:          b.txManager,
		AdminToken:         cfg.AdminToken,
		ContextLifespan:    cfg.ContextLifespan,
		RecordInteractions: cfg.RecordInteractions,
		Logger:             logger,
	})

	if seedFile != "" {
		timetable, err := timetablefile.Load(seedFile)
		if err != nil {
			return err
		}
		if err := application.ImportTimetable(shutdownCtx, timetable); err != nil {
			return fmt.Errorf("seed timetable: %w", err)
		}
		logger.Info("timetable seeded", "file", seedFile, "days", len(timetable))
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           application.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
	}()

	logger.Info("timetable webhook listening", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}
