package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/dayone-export/internal/markup"
)

// dayOneRecord is one element of a Day One export's "entries" array.
// Pointer fields distinguish absent keys from empty values.
type dayOneRecord struct {
	CreationDate *string `json:"creationDate"`
	Text         *string `json:"text"`
	UUID         string  `json:"uuid"`
	TimeZone     string  `json:"timeZone"`
}

// dayOneExport is the top-level object written by Day One.
type dayOneExport struct {
	Entries *[]json.RawMessage `json:"entries"`
}

// KindOf detects the source kind from the file extension.
func KindOf(path string) (SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceDayOne, nil
	case ".md", ".markdown":
		return SourceMarkdown, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedSource)
	}
}

// Load reads a Day One JSON export or a Markdown file and returns its
// normalized entries. A missing file yields an error wrapping fs.ErrNotExist.
func Load(path string) (*Collection, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &MalformedInputError{Path: path, Reason: "is a directory"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if kind == SourceMarkdown {
		return fromMarkdown(path, data, info.ModTime()), nil
	}
	return fromDayOne(path, data)
}

// fromDayOne decodes a Day One export. Both the exported object form and a
// bare array of records are accepted.
func fromDayOne(path string, data []byte) (*Collection, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: err.Error(), Err: err}
	}

	coll := &Collection{Path: path, Source: SourceDayOne}
	coll.Entries = make([]Entry, 0, len(records))
	for i, raw := range records {
		entry, ok := coll.normalizeRecord(i, raw)
		if ok {
			coll.Entries = append(coll.Entries, entry)
		}
	}
	sortEntries(coll.Entries)
	return coll, nil
}

func decodeRecords(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}

	if trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return records, nil
	}

	var export dayOneExport
	if err := json.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if export.Entries == nil {
		return nil, errors.New("no \"entries\" array")
	}
	return *export.Entries, nil
}

// normalizeRecord converts one raw record. Records that cannot produce a
// dated entry are skipped with a warning.
func (c *Collection) normalizeRecord(index int, raw json.RawMessage) (Entry, bool) {
	var rec dayOneRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.warnf("skipping record %d: %v", index, err)
		return Entry{}, false
	}
	if rec.Text == nil {
		c.warnf("skipping record %d: missing \"text\"", index)
		return Entry{}, false
	}
	if rec.CreationDate == nil {
		c.warnf("skipping record %d: missing \"creationDate\"", index)
		return Entry{}, false
	}

	date, err := time.Parse(time.RFC3339, *rec.CreationDate)
	if err != nil {
		c.warnf("skipping record %d: bad creationDate %q", index, *rec.CreationDate)
		return Entry{}, false
	}
	if rec.TimeZone != "" {
		if loc, locErr := time.LoadLocation(rec.TimeZone); locErr == nil {
			date = date.In(loc)
		}
	}

	return Entry{Date: date, Body: *rec.Text, UUID: rec.UUID}, true
}

// fromMarkdown wraps a whole Markdown file as a single entry dated by its
// modification time. The body is kept byte-for-byte.
func fromMarkdown(path string, data []byte, modTime time.Time) *Collection {
	body := string(data)
	coll := &Collection{
		Path:    path,
		Source:  SourceMarkdown,
		Entries: []Entry{{Date: modTime, Body: body}},
	}

	if fm, _, ok := markup.FrontMatter(body); ok && strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &coll.Meta); err != nil {
			coll.warnf("ignoring front matter: %v", err)
		}
	}
	return coll
}
