package domain

import "testing"

func TestDayRecordEntries(t *testing.T) {
	a := ClassEntry{CourseName: "A"}
	b := ClassEntry{CourseName: "B"}

	tests := []struct {
		name   string
		record DayRecord
		want   []string
	}{
		{name: "classes only", record: DayRecord{Classes: []ClassEntry{a}}, want: []string{"A"}},
		{name: "timetable only", record: DayRecord{Timetable: []ClassEntry{b}}, want: []string{"B"}},
		{name: "both present", record: DayRecord{Classes: []ClassEntry{a}, Timetable: []ClassEntry{b}}, want: []string{"A"}},
		{name: "empty classes wins", record: DayRecord{Classes: []ClassEntry{}, Timetable: []ClassEntry{b}}, want: nil},
		{name: "neither", record: DayRecord{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Entries()
			if got == nil {
				t.Fatal("Entries returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].CourseName != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i].CourseName, tt.want[i])
				}
			}
		})
	}
}

func TestIsWeekday(t *testing.T) {
	for _, day := range Weekdays {
		if !IsWeekday(day) {
			t.Errorf("IsWeekday(%q) = false", day)
		}
	}
	for _, day := range []string{"monday", "MONDAY", "Mon", ""} {
		if IsWeekday(day) {
			t.Errorf("IsWeekday(%q) = true", day)
		}
	}
	if len(SearchDays) != 6 || SearchDays[5] != "Saturday" {
		t.Errorf("SearchDays = %v", SearchDays)
	}
}
