package journal

import (
	"strings"
	"time"
)

// Chapter is a section of an entry delimited by a first-level heading.
type Chapter struct {
	Title string
	Body  string // content after the heading line
	Date  time.Time
	// Headed is false for the fallback chapter of an entry without headings.
	Headed bool
}

// SplitChapters splits an entry body on first-level "# " headings. Headings
// inside fenced code blocks are ignored. Text before the first heading is
// kept at the top of the first chapter. A body without headings yields a
// single chapter titled "Entry YYYY-MM-DD".
func SplitChapters(entry Entry) []Chapter {
	var (
		chapters []Chapter
		preamble []string
		current  *Chapter
		lines    []string
		fence    string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(lines, "\n")
		chapters = append(chapters, *current)
	}

	for line := range strings.SplitSeq(entry.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if closesFence(trimmed, fence) {
				fence = ""
			}
		} else if marker := fenceMarker(trimmed); marker != "" {
			fence = marker
		} else if title, ok := headingTitle(line); ok {
			flush()
			current = &Chapter{Title: title, Date: entry.Date, Headed: true}
			lines = nil
			if len(chapters) == 0 && len(preamble) > 0 {
				lines = append(lines, preamble...)
			}
			continue
		}

		if current == nil {
			preamble = append(preamble, line)
		} else {
			lines = append(lines, line)
		}
	}
	flush()

	if len(chapters) == 0 {
		return []Chapter{{
			Title: "Entry " + entry.Day(),
			Body:  entry.Body,
			Date:  entry.Date,
		}}
	}
	return chapters
}

// ChaptersOf flattens the chapters of every entry in collection order.
func ChaptersOf(c *Collection) []Chapter {
	var chapters []Chapter
	for _, entry := range c.Entries {
		chapters = append(chapters, SplitChapters(entry)...)
	}
	return chapters
}

// headingTitle reports whether line is a first-level ATX heading and returns
// its title with any closing #s removed.
func headingTitle(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	rest, ok := strings.CutPrefix(line, "#")
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	title := strings.TrimSpace(rest)
	if stripped := strings.TrimRight(title, "#"); stripped != title &&
		(stripped == "" || strings.HasSuffix(stripped, " ")) {
		title = strings.TrimSpace(stripped)
	}
	if title == "" {
		return "", false
	}
	return title, true
}

// fenceMarker returns the opening fence run of a code block line, if any.
func fenceMarker(trimmed string) string {
	for _, c := range []byte{'`', '~'} {
		if run := fenceRun(trimmed, c); len(run) >= 3 {
			return run
		}
	}
	return ""
}

// closesFence reports whether trimmed closes a block opened with fence: a
// run of the same character at least as long, followed only by spaces.
func closesFence(trimmed, fence string) bool {
	run := fenceRun(trimmed, fence[0])
	return len(run) >= len(fence) && strings.TrimSpace(trimmed[len(run):]) == ""
}

func fenceRun(s string, c byte) string {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return s[:n]
}
