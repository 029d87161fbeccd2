package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect carries the few differences between the PostgreSQL and SQLite
// schemas: table names and bind parameter syntax.
type Dialect struct {
	Name             string
	DriverName       string
	DayTable         string
	InteractionTable string
	numbered         bool
	txOptions        *sql.TxOptions
}

var (
	Postgres = Dialect{
		Name:             "postgres",
		DriverName:       "pgx",
		DayTable:         "timetable.day_documents",
		InteractionTable: "timetable.interactions",
		numbered:         true,
		txOptions:        &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
	SQLite = Dialect{
		Name:             "sqlite",
		DriverName:       "sqlite",
		DayTable:         "day_documents",
		InteractionTable: "interactions",
	}
)

func DialectByName(name string) (Dialect, error) {
	switch name {
	case Postgres.Name:
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unknown store dialect %q", name)
	}
}

func (d Dialect) placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
