package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gorewood/dayone-export/internal/journal"
)

// Format identifies an output format by its file extension.
type Format string

const (
	HTML     Format = "html"
	Markdown Format = "md"
	Text     Format = "txt"
	LaTeX    Format = "tex"
	Word     Format = "docx"
	PDF      Format = "pdf"
	EPUB     Format = "epub"
)

// Sequence is the fixed order in which formats are produced.
var Sequence = []Format{HTML, Markdown, Text, LaTeX, Word, PDF, EPUB}

var formatNames = map[Format]string{
	HTML:     "Styled HTML",
	Markdown: "Markdown",
	Text:     "Plain Text",
	LaTeX:    "LaTeX",
	Word:     "Word",
	PDF:      "PDF",
	EPUB:     "EPUB",
}

var formatAliases = map[string]Format{
	"markdown": Markdown,
	"text":     Text,
	"latex":    LaTeX,
	"word":     Word,
	"htm":      HTML,
}

var (
	// ErrUnavailable marks a renderer whose external backend is missing.
	// The organizer reports it as skipped rather than failed.
	ErrUnavailable = errors.New("renderer unavailable")

	// ErrUnknownFormat is returned when a format name is not recognized.
	ErrUnknownFormat = errors.New("unknown format")
)

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Name returns a human-readable label for the format.
func (f Format) Name() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return string(f)
}

// ParseFormat resolves a format name, extension or alias.
func ParseFormat(name string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	if f := Format(key); slices.Contains(Sequence, f) {
		return f, nil
	}
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ParseFormats resolves a list of names into a deduplicated subset of
// Sequence, kept in Sequence order. Entries may themselves be
// comma-separated. An empty list selects every format.
func ParseFormats(names []string) ([]Format, error) {
	selected := make(map[Format]bool)
	for _, name := range names {
		for part := range strings.SplitSeq(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			selected[f] = true
		}
	}
	if len(selected) == 0 {
		return slices.Clone(Sequence), nil
	}

	formats := make([]Format, 0, len(selected))
	for _, f := range Sequence {
		if selected[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Renderer writes a collection to a single output file.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, coll *journal.Collection, path string) error
}

// Job is one planned output file.
type Job struct {
	Format Format
	Path   string
}

// FileName returns the output file name for input rendered on day:
// output_<input base name>_<YYYY-MM-DD>.<ext>. The input's own extension
// is kept in the base name.
func FileName(input string, day time.Time, f Format) string {
	return "output_" + filepath.Base(input) + "_" + day.Format(journal.DateLayout) + f.Ext()
}

// NewJob plans the output file for format f inside dir.
func NewJob(dir, input string, day time.Time, f Format) Job {
	return Job{Format: f, Path: filepath.Join(dir, FileName(input, day, f))}
}

// Settings carries document-level options shared by the renderers.
type Settings struct {
	Title       string
	Author      string
	Language    string
	Cover       string
	PersianFont string
	Converter   string
	Timeout     time.Duration

	// Warnf receives non-fatal notices such as a missing cover image.
	Warnf func(format string, args ...any)
}

// DefaultPersianFont is the XePersian text font used when none is set.
const DefaultPersianFont = "XB Niloofar"

// DefaultTimeout bounds external PDF conversion.
const DefaultTimeout = 2 * time.Minute

// Merge returns s with every non-empty field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	s.Title = pick(o.Title, s.Title)
	s.Author = pick(o.Author, s.Author)
	s.Language = pick(o.Language, s.Language)
	s.Cover = pick(o.Cover, s.Cover)
	s.PersianFont = pick(o.PersianFont, s.PersianFont)
	s.Converter = pick(o.Converter, s.Converter)
	if o.Timeout > 0 {
		s.Timeout = o.Timeout
	}
	if o.Warnf != nil {
		s.Warnf = o.Warnf
	}
	return s
}

// FromMetadata turns document front matter into settings.
func FromMetadata(m journal.Metadata) Settings {
	return Settings{Title: m.Title, Author: m.Author, Language: m.Language}
}

func (s Settings) titleOr(fallback string) string {
	return pick(s.Title, fallback)
}

func (s Settings) language() string {
	return pick(s.Language, "en")
}

func (s Settings) warnf(format string, args ...any) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
	}
}

func pick(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// Defaults returns the built-in renderers for formats, in Sequence order.
func Defaults(s Settings, formats []Format) []Renderer {
	all := map[Format]Renderer{
		HTML:     NewHTMLRenderer(s),
		Markdown: NewMarkdownRenderer(),
		Text:     NewTextRenderer(),
		LaTeX:    NewLaTeXRenderer(s),
		Word:     NewWordRenderer(s),
		PDF:      NewPDFRenderer(s),
		EPUB:     NewEPUBRenderer(s),
	}
	renderers := make([]Renderer, 0, len(formats))
	for _, f := range Sequence {
		if slices.Contains(formats, f) {
			renderers = append(renderers, all[f])
		}
	}
	return renderers
}

// writeFile writes content to path with the permissions used for every
// textual output.
func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
