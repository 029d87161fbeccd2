package repository

import (
	"context"
	"sync"

	"service-timetable-assistant/internal/domain"
)

// MemoryStore keeps day documents and interactions in process memory. It
// satisfies the same contracts as the SQL repositories and is used for
// tests and seeded local runs.
type MemoryStore struct {
	mu           sync.RWMutex
	days         map[string]domain.DayRecord
	interactions []domain.Interaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: make(map[string]domain.DayRecord)}
}

func (s *MemoryStore) Get(_ context.Context, day string) (domain.DayRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.days[day]
	return record, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, day string, entries []domain.ClassEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[day] = newRecord(day, entries)
	return nil
}

// SetRecord stores a record as given, including legacy field layouts.
func (s *MemoryStore) SetRecord(record domain.DayRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[record.Day] = record
}

func (s *MemoryStore) Insert(_ context.Context, interaction domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, interaction)
	return nil
}

func (s *MemoryStore) Interactions() []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out
}

// WithTx stages writes and applies them only when fn succeeds.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	staged := &memoryTx{store: s, days: make(map[string]domain.DayRecord)}
	if err := fn(ctx, TxRepositories{Days: staged, Interactions: staged}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for day, record := range staged.days {
		s.days[day] = record
	}
	s.interactions = append(s.interactions, staged.interactions...)
	return nil
}

type memoryTx struct {
	store        *MemoryStore
	days         map[string]domain.DayRecord
	interactions []domain.Interaction
}

func (t *memoryTx) Get(ctx context.Context, day string) (domain.DayRecord, bool, error) {
	if record, ok := t.days[day]; ok {
		return record, true, nil
	}
	return t.store.Get(ctx, day)
}

func (t *memoryTx) Put(_ context.Context, day string, entries []domain.ClassEntry) error {
	t.days[day] = newRecord(day, entries)
	return nil
}

func (t *memoryTx) Insert(_ context.Context, interaction domain.Interaction) error {
	t.interactions = append(t.interactions, interaction)
	return nil
}

func newRecord(day string, entries []domain.ClassEntry) domain.DayRecord {
	classes := make([]domain.ClassEntry, len(entries))
	copy(classes, entries)
	return domain.DayRecord{Day: day, Classes: classes}
}
