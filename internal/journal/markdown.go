package journal

import (
	"fmt"
	"strings"
	"time"
)

const (
	markdownHeaderPrefix = "## Date: "
	markdownSeparator    = "\n\n---\n\n"
)

// FormatMarkdown renders entries as Markdown sections, each headed by its
// RFC 3339 timestamp and followed by the untouched body.
//
//	## Date: 2023-01-01T00:00:00Z
//
//	Plain note
//
//	---
//
//	## Date: 2023-01-02T00:00:00Z
//	...
func FormatMarkdown(entries []Entry) string {
	var builder strings.Builder
	for i, entry := range entries {
		if i > 0 {
			builder.WriteString(markdownSeparator)
		}
		builder.WriteString(markdownHeaderPrefix)
		builder.WriteString(entry.Date.Format(time.RFC3339Nano))
		builder.WriteString("\n\n")
		builder.WriteString(entry.Body)
	}
	return builder.String()
}

// ParseMarkdownExport recovers entries from the output of FormatMarkdown.
// Bodies containing a separator immediately followed by a date header
// cannot be told apart from the next entry.
func ParseMarkdownExport(doc string) ([]Entry, error) {
	if doc == "" {
		return nil, nil
	}
	if !strings.HasPrefix(doc, markdownHeaderPrefix) {
		return nil, fmt.Errorf("missing %q header", strings.TrimSpace(markdownHeaderPrefix))
	}

	parts := strings.Split(doc[len(markdownHeaderPrefix):], markdownSeparator+markdownHeaderPrefix)
	entries := make([]Entry, 0, len(parts))
	for i, part := range parts {
		stamp, rest, ok := strings.Cut(part, "\n")
		if !ok {
			return nil, fmt.Errorf("section %d: missing body", i+1)
		}
		date, err := time.Parse(time.RFC3339Nano, stamp)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
		body, ok := strings.CutPrefix(rest, "\n")
		if !ok {
			return nil, fmt.Errorf("section %d: missing blank line after header", i+1)
		}
		entries = append(entries, Entry{Date: date, Body: body})
	}
	return entries, nil
}
