package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"service-timetable-assistant/internal/domain"
)

type DayDocumentRepository interface {
	Get(ctx context.Context, day string) (domain.DayRecord, bool, error)
	Put(ctx context.Context, day string, entries []domain.ClassEntry) error
}

// dayDocument is the stored JSON shape. Older documents use "timetable"
// instead of "classes".
type dayDocument struct {
	Classes   []domain.ClassEntry `json:"classes"`
	Timetable []domain.ClassEntry `json:"timetable,omitempty"`
}

type DayDocumentSQLRepository struct {
	execer  Execer
	dialect Dialect
}

func NewDayDocumentSQLRepository(execer Execer, dialect Dialect) *DayDocumentSQLRepository {
	return &DayDocumentSQLRepository{execer: execer, dialect: dialect}
}

func (r *DayDocumentSQLRepository) Get(ctx context.Context, day string) (domain.DayRecord, bool, error) {
	query := fmt.Sprintf(`
SELECT document
FROM %s
WHERE day = %s
`, r.dialect.DayTable, r.dialect.placeholder(1))

	var raw []byte
	if err := r.execer.QueryRowContext(ctx, query, day).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DayRecord{}, false, nil
		}
		return domain.DayRecord{}, false, err
	}

	record, err := decodeDayDocument(day, raw)
	if err != nil {
		return domain.DayRecord{}, false, err
	}
	return record, true, nil
}

func (r *DayDocumentSQLRepository) Put(ctx context.Context, day string, entries []domain.ClassEntry) error {
	payload, err := encodeDayDocument(entries)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (day, document, updated_at)
VALUES (%s, %s, CURRENT_TIMESTAMP)
ON CONFLICT (day)
DO UPDATE SET
	document = EXCLUDED.document,
	updated_at = CURRENT_TIMESTAMP
`, r.dialect.DayTable, r.dialect.placeholder(1), r.dialect.placeholder(2))

	_, err = r.execer.ExecContext(ctx, query, day, string(payload))
	return err
}

func decodeDayDocument(day string, raw []byte) (domain.DayRecord, error) {
	var doc dayDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.DayRecord{}, fmt.Errorf("decode %s document: %w", day, err)
	}
	return domain.DayRecord{
		Day:       day,
		Classes:   doc.Classes,
		Timetable: doc.Timetable,
	}, nil
}

func encodeDayDocument(entries []domain.ClassEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.ClassEntry{}
	}
	return json.Marshal(dayDocument{Classes: entries})
}
