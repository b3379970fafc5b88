package render

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	epub "github.com/go-shiori/go-epub"
	"github.com/google/uuid"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/markup"
)

//go:embed assets/epub.css
var epubCSS string

// DefaultCover is looked up next to the input when no cover is configured.
const DefaultCover = "cover.jpg"

// EPUBRenderer writes an e-book with one chapter per top-level heading.
type EPUBRenderer struct {
	settings Settings
}

// NewEPUBRenderer creates an EPUBRenderer.
func NewEPUBRenderer(s Settings) *EPUBRenderer {
	return &EPUBRenderer{settings: s}
}

// Format implements Renderer.
func (r *EPUBRenderer) Format() Format { return EPUB }

// Render implements Renderer.
func (r *EPUBRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	return WriteEPUB(coll, r.settings, path)
}

// BookID returns the stable identifier for a book built from input.
func BookID(input string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("dayone-export:"+filepath.Base(input)))
}

// WriteEPUB builds the e-book for coll and writes it to path. Chapters come
// from journal.ChaptersOf and make up the table of contents in order.
func WriteEPUB(coll *journal.Collection, s Settings, path string) error {
	book, err := epub.NewEpub(s.titleOr(defaultDocumentTitle))
	if err != nil {
		return fmt.Errorf("creating epub: %w", err)
	}
	book.SetLang(s.language())
	book.SetIdentifier("urn:uuid:" + BookID(coll.Path).String())
	if s.Author != "" {
		book.SetAuthor(s.Author)
	}
	if span := coll.DateRange(); span != "" {
		book.SetDescription("Journal entries " + span)
	}

	scratch, err := os.MkdirTemp("", "dayone-export-epub-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	cssPath, err := addStylesheet(book, scratch)
	if err != nil {
		return err
	}
	if err := addCover(book, coll, s); err != nil {
		return err
	}

	for i, ch := range journal.ChaptersOf(coll) {
		body, err := chapterXHTML(ch)
		if err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Title, err)
		}
		name := fmt.Sprintf("chap_%02d.xhtml", i+1)
		if _, err := book.AddSection(body, ch.Title, name, cssPath); err != nil {
			return fmt.Errorf("adding chapter %q: %w", ch.Title, err)
		}
	}

	if err := book.Write(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func chapterXHTML(ch journal.Chapter) (string, error) {
	content, err := markup.XHTML(ch.Body)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(ch.Title))
	if ch.Headed {
		fmt.Fprintf(&b, "<p class=\"entry-date\"><strong>Date: %s</strong></p>\n", ch.Date.Format(journal.DateLayout))
	}
	b.WriteString(content)
	return b.String(), nil
}

func addStylesheet(book *epub.Epub, scratch string) (string, error) {
	src := filepath.Join(scratch, "style.css")
	if err := os.WriteFile(src, []byte(epubCSS), 0o600); err != nil {
		return "", fmt.Errorf("writing stylesheet: %w", err)
	}
	cssPath, err := book.AddCSS(src, "style.css")
	if err != nil {
		return "", fmt.Errorf("adding stylesheet: %w", err)
	}
	return cssPath, nil
}

// CoverPath returns the cover image used for coll: the configured path, or
// cover.jpg next to the input.
func CoverPath(coll *journal.Collection, s Settings) string {
	if s.Cover != "" {
		return s.Cover
	}
	return filepath.Join(filepath.Dir(coll.Path), DefaultCover)
}

// addCover attaches the cover image when it exists. A missing image only
// produces a warning.
func addCover(book *epub.Epub, coll *journal.Collection, s Settings) error {
	cover := CoverPath(coll, s)
	if _, err := os.Stat(cover); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.warnf("cover image %s not found; EPUB has no cover", cover)
			return nil
		}
		return fmt.Errorf("reading cover %s: %w", cover, err)
	}

	imgPath, err := book.AddImage(cover, "cover"+strings.ToLower(filepath.Ext(cover)))
	if err != nil {
		return fmt.Errorf("adding cover %s: %w", cover, err)
	}
	if err := book.SetCover(imgPath, ""); err != nil {
		return fmt.Errorf("setting cover %s: %w", cover, err)
	}
	return nil
}
