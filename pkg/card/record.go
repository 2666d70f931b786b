package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// UnknownName is used wherever a record has no name.
const UnknownName = "Unknown"

// Record holds the contact details read from a single JSON file.
// Every field is optional; an empty string means the field is absent.
type Record struct {
	Name     string
	Title    string
	Company  string
	Phone    string
	Email    string
	Website  string
	LinkedIn string
	GitHub   string
	Twitter  string
}

// Field is a labelled record value used for display.
type Field struct {
	Key   string
	Value string
}

// DisplayName returns the record name or UnknownName when it is empty.
func (r Record) DisplayName() string {
	if r.Name == "" {
		return UnknownName
	}
	return r.Name
}

// Fields returns the non-empty fields in canonical order.
func (r Record) Fields() []Field {
	all := []Field{
		{"name", r.Name},
		{"title", r.Title},
		{"company", r.Company},
		{"phone", r.Phone},
		{"email", r.Email},
		{"website", r.Website},
		{"linkedin", r.LinkedIn},
		{"github", r.GitHub},
		{"twitter", r.Twitter},
	}
	out := make([]Field, 0, len(all))
	for _, f := range all {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// Load reads a record from a JSON file. Missing files wrap ErrInputNotFound;
// malformed content returns a *FormatError.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, fmt.Errorf("JSON file not found at %s: %w", path, ErrInputNotFound)
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes record JSON. The path is only used for error messages.
func Parse(path string, data []byte) (Record, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, &FormatError{Path: path, Detail: err.Error()}
	}
	if raw == nil {
		return Record{}, &FormatError{Path: path, Detail: "expected a JSON object, got null"}
	}

	var rec Record
	targets := map[string]*string{
		"name":     &rec.Name,
		"title":    &rec.Title,
		"company":  &rec.Company,
		"phone":    &rec.Phone,
		"email":    &rec.Email,
		"website":  &rec.Website,
		"linkedin": &rec.LinkedIn,
		"github":   &rec.GitHub,
		"twitter":  &rec.Twitter,
	}

	for key, value := range raw {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		if string(bytes.TrimSpace(value)) == "null" {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return Record{}, &FormatError{Path: path, Detail: fmt.Sprintf("field %q must be a string", key)}
		}
	}
	return rec, nil
}

// Discover returns the *.json files directly inside dir, sorted by name.
// The extension match is case-sensitive.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no JSON files found in %s: %w", dir, ErrInputNotFound)
		}
		return nil, fmt.Errorf("stat input dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory: %w", dir, ErrInputNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".json" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no JSON files found in %s: %w", dir, ErrInputNotFound)
	}
	sort.Strings(files)
	return files, nil
}
