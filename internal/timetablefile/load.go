// Package timetablefile reads weekly timetable exports of the form
// {"Monday": [{"course_name": ...}, ...], ...} from JSON or YAML files.
package timetablefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"service-timetable-assistant/internal/domain"
)

type Timetable map[string][]domain.ClassEntry

func Load(path string) (Timetable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timetable file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return DecodeJSON(f)
	}
}

func DecodeJSON(r io.Reader) (Timetable, error) {
	var timetable Timetable
	if err := json.NewDecoder(r).Decode(&timetable); err != nil {
		return nil, fmt.Errorf("decode timetable json: %w", err)
	}
	return timetable, nil
}

func DecodeYAML(r io.Reader) (Timetable, error) {
	var timetable Timetable
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&timetable); err != nil {
		return nil, fmt.Errorf("decode timetable yaml: %w", err)
	}
	return timetable, nil
}
