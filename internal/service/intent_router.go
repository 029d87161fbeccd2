package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"service-timetable-assistant/internal/domain"
)

const (
	IntentGetTodayClasses  = "GetTodayClasses"
	IntentGetNextClass     = "GetNextClass"
	IntentGetClassLocation = "GetClassLocation"

	ParamDateTime   = "date-time"
	ParamCourseName = "course_name"
)

// TimetableStore reads weekday documents. The boolean result is false when
// no document exists for the day.
type TimetableStore interface {
	Get(ctx context.Context, day string) (domain.DayRecord, bool, error)
}

type FulfillmentRequest struct {
	Intent     string
	Parameters map[string]any
}

type Fulfillment struct {
	Text    string
	Context *domain.ConversationContext
}

// LocateResult is the first class found by a name lookup across days.
type LocateResult struct {
	Day   string
	Entry domain.ClassEntry
}

type IntentRouter struct {
	store  TimetableStore
	clock  func() time.Time
	logger *slog.Logger
}

func NewIntentRouter(store TimetableStore, logger *slog.Logger) *IntentRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntentRouter{
		store:  store,
		clock:  time.Now,
		logger: logger,
	}
}

// WithClock replaces the wall clock, mostly for tests.
func (r *IntentRouter) WithClock(clock func() time.Time) *IntentRouter {
	r.clock = clock
	return r
}

// Fulfill answers a single intent. Errors are only returned for store
// failures; every other outcome is a reply text.
func (r *IntentRouter) Fulfill(ctx context.Context, req FulfillmentRequest) (Fulfillment, error) {
	now := r.clock()

	switch req.Intent {
	case IntentGetTodayClasses:
		return r.todayClasses(ctx, req.Parameters[ParamDateTime], now)
	case IntentGetNextClass:
		return r.nextClass(ctx, now)
	case IntentGetClassLocation:
		return r.classLocation(ctx, courseNameParam(req.Parameters[ParamCourseName]))
	default:
		return Fulfillment{Text: replyFallback}, nil
	}
}

func (r *IntentRouter) todayClasses(ctx context.Context, dateParam any, now time.Time) (Fulfillment, error) {
	day := ResolveWeekday(dateParam, now)
	r.logger.DebugContext(ctx, "fetching timetable", "day", day)

	record, found, err := r.store.Get(ctx, day)
	if err != nil {
		return Fulfillment{}, fmt.Errorf("get timetable for %s: %w", day, err)
	}
	if !found {
		return Fulfillment{Text: formatNoTimetable(day)}, nil
	}

	entries := record.Entries()
	if len(entries) == 0 {
		return Fulfillment{Text: formatNoClasses(day)}, nil
	}

	return Fulfillment{
		Text:    formatDayClasses(day, entries),
		Context: &domain.ConversationContext{Day: day},
	}, nil
}

func (r *IntentRouter) nextClass(ctx context.Context, now time.Time) (Fulfillment, error) {
	today := now.Weekday().String()

	record, found, err := r.store.Get(ctx, today)
	if err != nil {
		return Fulfillment{}, fmt.Errorf("get timetable for %s: %w", today, err)
	}
	if !found {
		return Fulfillment{Text: formatNoTimetable(today)}, nil
	}

	entries := record.Entries()
	if len(entries) == 0 {
		return Fulfillment{Text: formatNoClasses(today)}, nil
	}

	next, ok := FindNextClass(entries, now)
	if !ok {
		return Fulfillment{Text: replyNoMoreClasses}, nil
	}
	return Fulfillment{Text: formatNextClass(next)}, nil
}

func (r *IntentRouter) classLocation(ctx context.Context, course string) (Fulfillment, error) {
	if course == "" {
		return Fulfillment{Text: replyAskCourseName}, nil
	}

	match, found, err := r.LocateClass(ctx, course)
	if err != nil {
		return Fulfillment{}, err
	}
	if !found {
		return Fulfillment{Text: formatCourseNotFound(course)}, nil
	}
	return Fulfillment{Text: formatClassLocation(match)}, nil
}

// LocateClass scans Monday through Saturday in order, reading one document
// per day, and stops at the first entry whose course name equals course
// ignoring case. Within a day the stored entry order decides.
func (r *IntentRouter) LocateClass(ctx context.Context, course string) (LocateResult, bool, error) {
	want := strings.ToLower(course)

	for _, day := range domain.SearchDays {
		record, found, err := r.store.Get(ctx, day)
		if err != nil {
			return LocateResult{}, false, fmt.Errorf("get timetable for %s: %w", day, err)
		}
		if !found {
			continue
		}
		for _, entry := range record.Entries() {
			if strings.ToLower(entry.CourseName) == want {
				return LocateResult{Day: day, Entry: entry}, true, nil
			}
		}
	}

	return LocateResult{}, false, nil
}

// courseNameParam reads a string parameter, or the first string of a list
// parameter.
func courseNameParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
