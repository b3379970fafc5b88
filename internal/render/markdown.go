package render

import (
	"context"

	"github.com/gorewood/dayone-export/internal/journal"
)

// MarkdownRenderer writes entries as one Markdown document whose bodies are
// copied byte for byte. journal.ParseMarkdownExport reads the result back.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer { return &MarkdownRenderer{} }

// Format implements Renderer.
func (r *MarkdownRenderer) Format() Format { return Markdown }

// Render implements Renderer.
func (r *MarkdownRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	return writeFile(path, journal.FormatMarkdown(coll.Entries))
}
