package repository

import (
	"context"
	"database/sql"
)

type TxRepositories struct {
	Days         DayDocumentRepository
	Interactions InteractionRepository
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type SQLTxManager struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLTxManager(db *sql.DB, dialect Dialect) *SQLTxManager {
	return &SQLTxManager{db: db, dialect: dialect}
}

func (m *SQLTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	tx, err := m.db.BeginTx(ctx, m.dialect.txOptions)
	if err != nil {
		return err
	}

	repos := TxRepositories{
		Days:         NewDayDocumentSQLRepository(tx, m.dialect),
		Interactions: NewInteractionSQLRepository(tx, m.dialect),
	}

	if err := fn(ctx, repos); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return tx.Commit()
}
