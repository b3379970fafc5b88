package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/markup"
)

//go:embed assets/style.css
var pageCSS string

//go:embed assets/page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// defaultHTMLTitle heads the page when no title is configured.
const defaultHTMLTitle = "Journal Entries"

type htmlEntry struct {
	Date    string
	Content template.HTML
}

type htmlPage struct {
	Lang    string
	Title   string
	Author  string
	CSS     template.CSS
	Entries []htmlEntry
}

// HTMLRenderer writes a single styled HTML page.
type HTMLRenderer struct {
	settings Settings
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(s Settings) *HTMLRenderer {
	return &HTMLRenderer{settings: s}
}

// Format implements Renderer.
func (r *HTMLRenderer) Format() Format { return HTML }

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	page, err := FormatHTML(coll, r.settings)
	if err != nil {
		return err
	}
	return writeFile(path, page)
}

// FormatHTML renders the collection as a complete HTML document. Entry
// bodies go through goldmark; raw HTML in a body is omitted.
func FormatHTML(coll *journal.Collection, s Settings) (string, error) {
	data := htmlPage{
		Lang:    s.language(),
		Title:   s.titleOr(defaultHTMLTitle),
		Author:  s.Author,
		CSS:     template.CSS(pageCSS), //nolint:gosec // embedded stylesheet
		Entries: make([]htmlEntry, 0, coll.Len()),
	}
	for _, entry := range coll.Entries {
		content, err := markup.HTML(entry.Body)
		if err != nil {
			return "", fmt.Errorf("entry %s: %w", entry.Day(), err)
		}
		data.Entries = append(data.Entries, htmlEntry{
			Date:    entry.Day(),
			Content: template.HTML(content), //nolint:gosec // goldmark output, raw HTML disabled
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering html page: %w", err)
	}
	return buf.String(), nil
}
