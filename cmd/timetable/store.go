package main

import (
	"context"
	"database/sql"
	"log/slog"

	"service-timetable-assistant/internal/repository"
	"service-timetable-assistant/internal/service"
	servicemigrations "service-timetable-assistant/migrations"
)

type backend struct {
	store     service.TimetableStore
	txManager repository.TxManager
	close     func() error
}

func openBackend(ctx context.Context, cfg config, logger *slog.Logger, migrate bool) (backend, error) {
	if cfg.StoreDriver == driverMemory {
		mem := repository.NewMemoryStore()
		logger.Warn("using in-memory timetable store; data is lost on exit")
		return backend{store: mem, txManager: mem, close: func() error { return nil }}, nil
	}

	db, dialect, err := openDatabase(ctx, cfg)
	if err != nil {
		return backend{}, err
	}
	logger.Debug("database connection successful", "driver", dialect.Name)

	if migrate {
		if err := servicemigrations.Up(db, dialect.Name); err != nil {
			db.Close()
			return backend{}, err
		}
		logger.Debug("migrations completed successfully")
	}

	return backend{
		store:     repository.NewDayDocumentSQLRepository(db, dialect),
		txManager: repository.NewSQLTxManager(db, dialect),
		close:     db.Close,
	}, nil
}

func openDatabase(ctx context.Context, cfg config) (*sql.DB, repository.Dialect, error) {
	dialect, err := repository.DialectByName(cfg.StoreDriver)
	if err != nil {
		return nil, repository.Dialect{}, err
	}
	db, err := repository.OpenDB(ctx, dialect, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, repository.Dialect{}, err
	}
	return db, dialect, nil
}
