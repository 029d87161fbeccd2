package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"service-timetable-assistant/internal/domain"
	servicemigrations "service-timetable-assistant/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(context.Background(), SQLite, ":memory:", PoolConfig{})
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := servicemigrations.Up(db, SQLite.Name); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return db
}

func TestDayDocumentSQLRepository_GetMissing(t *testing.T) {
	repo := NewDayDocumentSQLRepository(openTestDB(t), SQLite)

	_, found, err := repo.Get(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for missing document")
	}
}

func TestDayDocumentSQLRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewDayDocumentSQLRepository(openTestDB(t), SQLite)

	entries := []domain.ClassEntry{
		{CourseName: "OS", StartTime: "10:00", EndTime: "11:00", Location: "Lab1"},
		{CourseName: "DBMS", StartTime: "08:00", EndTime: "09:00", Location: "A101"},
	}
	if err := repo.Put(ctx, "Wednesday", entries); err != nil {
		t.Fatalf("Put: %v", err)
	}

	record, found, err := repo.Get(ctx, "Wednesday")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if record.Day != "Wednesday" {
		t.Errorf("day = %q", record.Day)
	}
	got := record.Entries()
	if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
		t.Errorf("entries = %+v, want stored order %+v", got, entries)
	}

	if err := repo.Put(ctx, "Wednesday", nil); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	record, found, err = repo.Get(ctx, "Wednesday")
	if err != nil || !found {
		t.Fatalf("Get after overwrite: found=%v err=%v", found, err)
	}
	if record.Classes == nil || len(record.Entries()) != 0 {
		t.Errorf("record = %+v, want present empty classes", record)
	}
}

func TestDayDocumentSQLRepository_LegacyDocuments(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewDayDocumentSQLRepository(db, SQLite)

	docs := map[string]string{
		"Monday":   `{"timetable":[{"course_name":"CN","start_time":"09:00","end_time":"10:00","location":"C1"}]}`,
		"Tuesday":  `{"classes":[],"timetable":[{"course_name":"CN","start_time":"09:00","end_time":"10:00","location":"C1"}]}`,
		"Thursday": `{"classes":null,"timetable":[{"course_name":"AI","start_time":"11:00","end_time":"12:00","location":"C2"}]}`,
		"Friday":   `{}`,
	}
	for day, doc := range docs {
		if _, err := db.Exec(`INSERT INTO day_documents (day, document) VALUES (?, ?)`, day, doc); err != nil {
			t.Fatalf("insert %s: %v", day, err)
		}
	}

	tests := []struct {
		day  string
		want []string
	}{
		{day: "Monday", want: []string{"CN"}},
		{day: "Tuesday", want: nil},
		{day: "Thursday", want: []string{"AI"}},
		{day: "Friday", want: nil},
	}
	for _, tt := range tests {
		record, found, err := repo.Get(ctx, tt.day)
		if err != nil || !found {
			t.Fatalf("Get(%s): found=%v err=%v", tt.day, found, err)
		}
		got := record.Entries()
		if len(got) != len(tt.want) {
			t.Errorf("%s: entries = %+v, want %v", tt.day, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].CourseName != tt.want[i] {
				t.Errorf("%s: entry %d = %q, want %q", tt.day, i, got[i].CourseName, tt.want[i])
			}
		}
	}
}

func TestDayDocumentSQLRepository_CorruptDocument(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec(`INSERT INTO day_documents (day, document) VALUES (?, ?)`, "Monday", "not json"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, _, err := NewDayDocumentSQLRepository(db, SQLite).Get(context.Background(), "Monday")
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSQLTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := NewSQLTxManager(db, SQLite)
	errBoom := errors.New("boom")

	err := manager.WithTx(ctx, func(ctx context.Context, repos TxRepositories) error {
		if err := repos.Days.Put(ctx, "Monday", []domain.ClassEntry{{CourseName: "OS"}}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if _, found, _ := NewDayDocumentSQLRepository(db, SQLite).Get(ctx, "Monday"); found {
		t.Error("Monday committed despite rollback")
	}
}

func TestSQLTxManager_InsertInteraction(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := NewSQLTxManager(db, SQLite)

	interaction := domain.Interaction{
		ID:        uuid.New(),
		Session:   "projects/p/agent/sessions/s1",
		Intent:    "GetNextClass",
		QueryText: "what's my next class",
		Reply:     "You have no more classes today!",
		CreatedAt: time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC),
	}
	err := manager.WithTx(ctx, func(ctx context.Context, repos TxRepositories) error {
		return repos.Interactions.Insert(ctx, interaction)
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	var id, reply string
	if err := db.QueryRow(`SELECT id, reply FROM interactions WHERE session = ?`, interaction.Session).Scan(&id, &reply); err != nil {
		t.Fatalf("select: %v", err)
	}
	if id != interaction.ID.String() || reply != interaction.Reply {
		t.Errorf("row = (%s, %s)", id, reply)
	}
}

func TestDialectByName(t *testing.T) {
	for _, name := range []string{"postgres", "sqlite"} {
		d, err := DialectByName(name)
		if err != nil || d.Name != name {
			t.Errorf("DialectByName(%q) = %+v, %v", name, d, err)
		}
	}
	if _, err := DialectByName("mysql"); err == nil {
		t.Error("expected error for unknown dialect")
	}
	if got := Postgres.placeholder(2); got != "$2" {
		t.Errorf("postgres placeholder = %q", got)
	}
	if got := SQLite.placeholder(2); got != "?" {
		t.Errorf("sqlite placeholder = %q", got)
	}
}
