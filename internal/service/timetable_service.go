package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-timetable-assistant/internal/domain"
	"service-timetable-assistant/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// TimetableService owns every write path: timetable imports and the
// interaction log. Reads for answering intents go through IntentRouter.
type TimetableService struct {
	txManager repository.TxManager
	clock     func() time.Time
}

func NewTimetableService(txManager repository.TxManager) *TimetableService {
	return &TimetableService{
		txManager: txManager,
		clock:     time.Now,
	}
}

// Import replaces the documents of every day in timetable within one
// transaction. Days not present in timetable are left untouched.
func (s *TimetableService) Import(ctx context.Context, timetable map[string][]domain.ClassEntry) error {
	if len(timetable) == 0 {
		return fmt.Errorf("%w: timetable has no days", ErrInvalidInput)
	}

	days := make([]string, 0, len(timetable))
	for day, entries := range timetable {
		if err := validateDay(day, entries); err != nil {
			return err
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return weekdayIndex(days[i]) < weekdayIndex(days[j])
	})

	return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		for _, day := range days {
			if err := repos.Days.Put(ctx, day, timetable[day]); err != nil {
				return fmt.Errorf("store %s: %w", day, err)
			}
		}
		return nil
	})
}

func (s *TimetableService) ReplaceDay(ctx context.Context, day string, entries []domain.ClassEntry) error {
	return s.Import(ctx, map[string][]domain.ClassEntry{day: entries})
}

func (s *TimetableService) RecordInteraction(ctx context.Context, session, intent, queryText, reply string) error {
	interaction := domain.Interaction{
		ID:        uuid.New(),
		Session:   session,
		Intent:    intent,
		QueryText: queryText,
		Reply:     reply,
		CreatedAt: s.clock(),
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		return repos.Interactions.Insert(ctx, interaction)
	})
}

func validateDay(day string, entries []domain.ClassEntry) error {
	if !domain.IsWeekday(day) {
		return fmt.Errorf("%w: %q is not a weekday name", ErrInvalidInput, day)
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.CourseName) == "" {
			return fmt.Errorf("%w: %s entry %d has no course_name", ErrInvalidInput, day, i)
		}
	}
	return nil
}

func weekdayIndex(day string) int {
	for i, name := range domain.Weekdays {
		if name == day {
			return i
		}
	}
	return len(domain.Weekdays)
}
