package domain

// DayRecord is one weekday document. Classes and Timetable are legacy
// synonyms; a nil slice means the field was absent from the document.
type DayRecord struct {
	Day       string
	Classes   []ClassEntry
	Timetable []ClassEntry
}

// Entries prefers Classes whenever the field is present, even when it is
// empty, and falls back to Timetable otherwise.
func (r DayRecord) Entries() []ClassEntry {
	if r.Classes != nil {
		return r.Classes
	}
	if r.Timetable != nil {
		return r.Timetable
	}
	return []ClassEntry{}
}
