// Package journal loads journal sources and normalizes them into dated entries.
package journal

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// DateLayout is the day-precision layout used in human-facing headings.
const DateLayout = "2006-01-02"

// SourceKind identifies the input format of a collection.
type SourceKind string

const (
	SourceDayOne   SourceKind = "dayone"
	SourceMarkdown SourceKind = "markdown"
)

// ErrUnsupportedSource is returned for inputs that are neither JSON nor Markdown.
var ErrUnsupportedSource = errors.New("unsupported source type: use a .json or .md file")

// ErrNoEntries is returned when a source yields no usable entries.
var ErrNoEntries = errors.New("no entries found")

// MalformedInputError reports an input that could not be parsed at all.
type MalformedInputError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Entry is one journal record: a date and its Markdown body.
type Entry struct {
	Date time.Time `json:"date"`
	Body string    `json:"body"`
	UUID string    `json:"uuid,omitempty"`
}

// Day returns the entry date formatted as YYYY-MM-DD.
func (e Entry) Day() string {
	return e.Date.Format(DateLayout)
}

// Metadata describes the document produced from a collection.
type Metadata struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Language string `yaml:"lang"`
}

// Collection is the ordered set of entries read from one input file.
type Collection struct {
	Path     string
	Source   SourceKind
	Entries  []Entry
	Meta     Metadata
	Warnings []string
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.Entries)
}

// DateRange returns a human-readable span of the entry dates.
func (c *Collection) DateRange() string {
	if len(c.Entries) == 0 {
		return "no entries"
	}
	first := c.Entries[0].Day()
	last := c.Entries[len(c.Entries)-1].Day()
	if first == last {
		return first
	}
	return first + " to " + last
}

// sortEntries orders entries by date, keeping input order for equal dates.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
}

func (c *Collection) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
