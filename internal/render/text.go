package render

import (
	"context"
	"strconv"
	"strings"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/markup"
)

// TextRenderer writes entries as plain text with Markdown markers removed.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

// Format implements Renderer.
func (r *TextRenderer) Format() Format { return Text }

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	return writeFile(path, FormatText(coll.Entries))
}

// FormatText renders each entry as "Date: YYYY-MM-DD" followed by its
// stripped body. Entries are separated by a blank line.
func FormatText(entries []journal.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, "Date: "+entry.Day()+"\n"+StripMarkdown(entry.Body))
	}
	return strings.Join(parts, "\n\n")
}

// StripMarkdown removes heading, emphasis, link and code markers from body.
// List items keep a "- " or "N. " bullet, indented by nesting depth.
func StripMarkdown(body string) string {
	var builder strings.Builder
	var prev *markup.Block
	for _, block := range markup.Parse(body) {
		if prev != nil {
			builder.WriteString(blockGap(*prev, block))
		}
		switch block.Kind {
		case markup.ListItem:
			builder.WriteString(strings.Repeat("  ", block.Level-1))
			builder.WriteString(bullet(block))
			builder.WriteString(block.Text())
		case markup.Rule:
			builder.WriteString("---")
		default:
			builder.WriteString(indent(block.Text(), block.Indent))
		}
		prev = &block
	}
	return builder.String()
}

// blockGap separates consecutive list items by a newline and everything
// else by a blank line.
func blockGap(prev, next markup.Block) string {
	if prev.Kind == markup.ListItem && next.Kind == markup.ListItem {
		return "\n"
	}
	return "\n\n"
}

func bullet(b markup.Block) string {
	if b.Ordered {
		return strconv.Itoa(b.Number) + ". "
	}
	return "- "
}

// indent shifts every line of a block continuing a list item under its
// bullet.
func indent(text string, depth int) string {
	if depth == 0 {
		return text
	}
	pad := strings.Repeat("  ", depth)
	return pad + strings.ReplaceAll(text, "\n", "\n"+pad)
}
