package service

import (
	"strconv"
	"strings"
	"time"

	"service-timetable-assistant/internal/domain"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ResolveWeekday returns the English weekday name of the date-time
// parameter, or of now when the parameter is missing or does not parse.
func ResolveWeekday(param any, now time.Time) string {
	if t, ok := parseDateTimeParam(param, now.Location()); ok {
		return t.In(now.Location()).Weekday().String()
	}
	return now.Weekday().String()
}

// parseDateTimeParam accepts a plain timestamp string as well as the object
// forms the intent recognizer produces for date-time and date-period values.
func parseDateTimeParam(param any, loc *time.Location) (time.Time, bool) {
	switch value := param.(type) {
	case string:
		return parseTimestamp(value, loc)
	case map[string]any:
		for _, key := range []string{"date_time", "startDateTime", "startDate"} {
			if raw, ok := value[key].(string); ok {
				return parseTimestamp(raw, loc)
			}
		}
	}
	return time.Time{}, false
}

func parseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsUpcoming reports whether the entry starts strictly after now on now's
// calendar date. Start times that are not HH:MM never count as upcoming.
func IsUpcoming(entry domain.ClassEntry, now time.Time) bool {
	hour, minute, ok := parseClock(entry.StartTime)
	if !ok {
		return false
	}
	startsAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	return startsAt.After(now)
}

// FindNextClass returns the first upcoming entry in stored order. Entries
// are not sorted by start time first.
func FindNextClass(entries []domain.ClassEntry, now time.Time) (domain.ClassEntry, bool) {
	for _, entry := range entries {
		if IsUpcoming(entry, now) {
			return entry, true
		}
	}
	return domain.ClassEntry{}, false
}

func parseClock(value string) (int, int, bool) {
	hourPart, minutePart, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
