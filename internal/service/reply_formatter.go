package service

import (
	"fmt"
	"strings"

	"service-timetable-assistant/internal/domain"
)

const (
	replyFallback        = "Sorry, I didn't understand that. Could you repeat?"
	replyUpstreamFailure = "Something went wrong. Please try again later."
	replyAskCourseName   = "Please tell me the course name (e.g., OOPS, DBMS)."
	replyNoMoreClasses   = "You have no more classes today!"
)

// ReplyUpstreamFailure is the text sent when a request could not be
// answered at all.
func ReplyUpstreamFailure() string {
	return replyUpstreamFailure
}

func formatEntryLine(entry domain.ClassEntry) string {
	return fmt.Sprintf("%s (%s–%s) in %s", entry.CourseName, entry.StartTime, entry.EndTime, entry.Location)
}

func formatDayClasses(day string, entries []domain.ClassEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatEntryLine(entry))
	}
	return fmt.Sprintf("Here are your classes for %s:\n%s", day, strings.Join(lines, "\n"))
}

func formatNextClass(entry domain.ClassEntry) string {
	return fmt.Sprintf("Your next class is %s in %s at %s.", entry.CourseName, entry.Location, entry.StartTime)
}

func formatClassLocation(match LocateResult) string {
	return fmt.Sprintf("The %s class is on %s in %s at %s.",
		match.Entry.CourseName,
		match.Day,
		match.Entry.Location,
		match.Entry.StartTime,
	)
}

func formatNoTimetable(day string) string {
	return fmt.Sprintf("No timetable found for %s.", day)
}

func formatNoClasses(day string) string {
	return fmt.Sprintf("No classes found for %s.", day)
}

func formatCourseNotFound(course string) string {
	return fmt.Sprintf("I couldn't find any class named %s.", course)
}
