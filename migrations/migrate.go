package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

type dialect struct {
	dir         string
	table       string
	placeholder string
}

var dialects = map[string]dialect{
	"postgres": {dir: "postgres", table: "public.schema_migrations_timetable", placeholder: "$1"},
	"sqlite":   {dir: "sqlite", table: "schema_migrations_timetable", placeholder: "?"},
}

// Up applies every embedded migration for the named dialect that has not
// been recorded yet, each inside its own transaction.
func Up(db *sql.DB, dialectName string) error {
	if db == nil {
		return errors.New("db is required")
	}
	d, ok := dialects[dialectName]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialectName)
	}

	if err := ensureMigrationsTable(db, d); err != nil {
		return err
	}

	names, err := fs.Glob(files, d.dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("list embedded migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, d, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		sqlBytes, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for %s: %w", name, err)
		}

		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			if !isIgnorableMigrationError(err) {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if err := markApplied(db, d, name); err != nil {
				return fmt.Errorf("record migration %s after ignored error: %w", name, err)
			}
			continue
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (filename) VALUES (%s)`, d.table, d.placeholder),
			name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}

	return nil
}

// Applied lists recorded migration filenames in order.
func Applied(db *sql.DB, dialectName string) ([]string, error) {
	d, ok := dialects[dialectName]
	if !ok {
		return nil, fmt.Errorf("no migrations for dialect %q", dialectName)
	}

	rows, err := db.Query(fmt.Sprintf(`SELECT filename FROM %s ORDER BY filename`, d.table))
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func ensureMigrationsTable(db *sql.DB, d dialect) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	filename text PRIMARY KEY,
	applied_at timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`, d.table)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("ensure migration table %s: %w", d.table, err)
	}
	return nil
}

func isApplied(db *sql.DB, d dialect, name string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE filename = %s`, d.table, d.placeholder),
		name,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return count > 0, nil
}

func markApplied(db *sql.DB, d dialect, name string) error {
	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %s (filename) VALUES (%s) ON CONFLICT (filename) DO NOTHING`, d.table, d.placeholder),
		name,
	)
	return err
}

func isIgnorableMigrationError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case "42P07", // duplicate_table
		"42710", // duplicate_object
		"42P06": // duplicate_schema
		return true
	default:
		return false
	}
}
