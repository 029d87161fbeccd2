package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUp_SQLite(t *testing.T) {
	db := openSQLite(t, ":memory:")

	if err := Up(db, "sqlite"); err != nil {
		t.Fatalf("Up: %v", err)
	}

	for _, table := range []string{"day_documents", "interactions"} {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("lookup %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s missing", table)
		}
	}

	applied, err := Applied(db, "sqlite")
	if err != nil {
		t.Fatalf("Applied: %v", err)
	}
	want := []string{"sqlite/0001_day_documents.sql", "sqlite/0002_interactions.sql"}
	if len(applied) != len(want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("applied[%d] = %q, want %q", i, applied[i], want[i])
		}
	}
}

func TestUp_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.db")

	first := openSQLite(t, path)
	if err := Up(first, "sqlite"); err != nil {
		t.Fatalf("first Up: %v", err)
	}
	first.Close()

	second := openSQLite(t, path)
	if err := Up(second, "sqlite"); err != nil {
		t.Fatalf("second Up: %v", err)
	}
	applied, err := Applied(second, "sqlite")
	if err != nil {
		t.Fatalf("Applied: %v", err)
	}
	if len(applied) != 2 {
		t.Errorf("applied = %v, want 2 entries", applied)
	}
}

func TestUp_Errors(t *testing.T) {
	if err := Up(nil, "sqlite"); err == nil {
		t.Error("expected error for nil db")
	}
	if err := Up(openSQLite(t, ":memory:"), "oracle"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
