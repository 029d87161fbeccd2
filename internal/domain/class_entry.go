package domain

type ClassEntry struct {
	CourseName string `json:"course_name" yaml:"course_name"`
	StartTime  string `json:"start_time" yaml:"start_time"`
	EndTime    string `json:"end_time" yaml:"end_time"`
	Location   string `json:"location" yaml:"location"`
}
