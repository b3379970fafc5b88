// Package markup parses entry bodies with goldmark and exposes them either as
// rendered HTML or as a flat block model that the text, LaTeX and Word
// writers walk.
package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	htmlMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	xhtmlMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
)

// HTML converts a Markdown body to an HTML fragment. Single newlines become
// <br>, raw HTML in the source is omitted and YAML front matter is not
// rendered.
func HTML(body string) (string, error) {
	return convert(htmlMarkdown, body)
}

// XHTML is HTML with self-closing void elements, as EPUB readers require.
func XHTML(body string) (string, error) {
	return convert(xhtmlMarkdown, body)
}

func convert(md goldmark.Markdown, body string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Content(body)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
