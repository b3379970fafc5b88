package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/markup"
)

// maxWordHeading is the deepest heading style in the default template.
const maxWordHeading = 9

// Style IDs from the default template. Paragraph and run styles are
// referenced by ID, not by display name.
const (
	styleListBullet   = "ListBullet"
	styleListNumber   = "ListNumber"
	styleIntenseQuote = "IntenseQuote"
	styleNoSpacing    = "NoSpacing"
	styleCodeChar     = "MacroTextChar"
)

// WordRenderer writes a DOCX document.
type WordRenderer struct {
	settings Settings
}

// NewWordRenderer creates a WordRenderer.
func NewWordRenderer(s Settings) *WordRenderer {
	return &WordRenderer{settings: s}
}

// Format implements Renderer.
func (r *WordRenderer) Format() Format { return Word }

// Render implements Renderer.
func (r *WordRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	return WriteWord(coll, r.settings, path)
}

// WriteWord builds the Word document for coll and saves it to path.
func WriteWord(coll *journal.Collection, s Settings, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	if _, err := doc.AddHeading(s.titleOr(defaultDocumentTitle), 1); err != nil {
		return fmt.Errorf("adding title: %w", err)
	}
	if s.Author != "" {
		doc.AddParagraph("").AddText(s.Author).Italic(true)
	}

	for _, entry := range coll.Entries {
		if _, err := doc.AddHeading("Date: "+entry.Day(), 2); err != nil {
			return fmt.Errorf("adding heading for %s: %w", entry.Day(), err)
		}
		if err := addWordBlocks(doc, markup.Parse(entry.Body)); err != nil {
			return fmt.Errorf("entry %s: %w", entry.Day(), err)
		}
		doc.AddParagraph("")
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func addWordBlocks(doc *docx.RootDoc, blocks []markup.Block) error {
	for _, block := range blocks {
		switch block.Kind {
		case markup.Heading:
			if _, err := doc.AddHeading(block.Text(), uint(min(block.Level, maxWordHeading))); err != nil { //nolint:gosec // level is 1..9
				return fmt.Errorf("adding heading: %w", err)
			}
		case markup.Code:
			for line := range strings.SplitSeq(block.Code, "\n") {
				doc.AddParagraph(line).Style(styleNoSpacing)
			}
		case markup.Rule:
			doc.AddParagraph("* * *")
		case markup.ListItem:
			addParagraphs(doc, block.Spans, listStyle(block))
		default:
			style := ""
			if block.Quote {
				style = styleIntenseQuote
			}
			addParagraphs(doc, block.Spans, style)
		}
	}
	return nil
}

// addParagraphs writes spans as one paragraph per line.
func addParagraphs(doc *docx.RootDoc, spans []markup.Span, style string) {
	for _, line := range splitLines(spans) {
		p := addRuns(doc.AddParagraph(""), line)
		if style != "" {
			p.Style(style)
		}
	}
}

func splitLines(spans []markup.Span) [][]markup.Span {
	lines := [][]markup.Span{nil}
	for _, span := range spans {
		if span.Break {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], span)
	}
	return lines
}

// addRuns appends one run per span. Link targets follow the link text in
// parentheses.
func addRuns(p *docx.Paragraph, spans []markup.Span) *docx.Paragraph {
	for _, span := range spans {
		run := p.AddText(span.Text)
		if span.Bold {
			run.Bold(true)
		}
		if span.Italic {
			run.Italic(true)
		}
		if span.Strike {
			run.Strike(true)
		}
		if span.Code {
			run.Style(styleCodeChar)
		}
		if span.URL != "" && span.URL != span.Text {
			p.AddText(" (" + span.URL + ")")
		}
	}
	return p
}

// listStyle picks the built-in list paragraph style; the default template
// defines levels up to 3.
func listStyle(b markup.Block) string {
	style := styleListBullet
	if b.Ordered {
		style = styleListNumber
	}
	if level := min(b.Level, 3); level > 1 {
		style = fmt.Sprintf("%s%d", style, level)
	}
	return style
}
