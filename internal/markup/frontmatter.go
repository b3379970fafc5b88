package markup

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter splits a leading block delimited by "---" lines from a
// Markdown document. meta is the text between the delimiters and content
// is everything after the closing one. ok is false when the document does
// not open with a complete block.
func FrontMatter(doc string) (meta, content string, ok bool) {
	rest, found := strings.CutPrefix(doc, "---\n")
	if !found {
		if rest, found = strings.CutPrefix(doc, "---\r\n"); !found {
			return "", doc, false
		}
	}

	for offset := 0; offset < len(rest); {
		line, next := rest[offset:], len(rest)
		if end := strings.IndexByte(line, '\n'); end >= 0 {
			line, next = line[:end], offset+end+1
		}
		if strings.TrimRight(line, "\r") == "---" {
			return rest[:offset], rest[next:], true
		}
		offset = next
	}
	return "", doc, false
}

// Content returns the displayable part of a body: the body without its
// front matter when that block is a YAML mapping, otherwise the body as is.
func Content(body string) string {
	meta, content, ok := FrontMatter(body)
	if !ok {
		return body
	}
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(meta), &fields); err != nil || len(fields) == 0 {
		return body
	}
	return content
}
