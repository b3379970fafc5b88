package render

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/markup"
)

// defaultDocumentTitle heads the LaTeX, Word and EPUB documents when no
// title is configured.
const defaultDocumentTitle = "Collected Notes"

var latexEscapes = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

var latexURLEscapes = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`#`, `\#`,
)

var enumCounters = []string{"enumi", "enumii", "enumiii", "enumiv"}

// LaTeXRenderer writes an article with a title page and table of contents.
type LaTeXRenderer struct {
	settings Settings
}

// NewLaTeXRenderer creates a LaTeXRenderer.
func NewLaTeXRenderer(s Settings) *LaTeXRenderer {
	return &LaTeXRenderer{settings: s}
}

// Format implements Renderer.
func (r *LaTeXRenderer) Format() Format { return LaTeX }

// Render implements Renderer.
func (r *LaTeXRenderer) Render(_ context.Context, coll *journal.Collection, path string) error {
	return writeFile(path, FormatLaTeX(coll.Entries, r.settings))
}

// EscapeLaTeX escapes the characters LaTeX treats specially.
func EscapeLaTeX(s string) string {
	return latexEscapes.Replace(s)
}

// ContainsPersian reports whether any entry holds Arabic-script text.
func ContainsPersian(entries []journal.Entry) bool {
	for _, entry := range entries {
		for _, r := range entry.Body {
			if unicode.Is(unicode.Arabic, r) {
				return true
			}
		}
	}
	return false
}

// FormatLaTeX renders entries as a complete LaTeX document. Arabic-script
// text, or a "fa" language setting, switches the preamble to XePersian.
func FormatLaTeX(entries []journal.Entry, s Settings) string {
	persian := s.Language == "fa" || ContainsPersian(entries)
	title := EscapeLaTeX(s.titleOr(defaultDocumentTitle))

	var b strings.Builder
	b.WriteString("\\documentclass[a4paper,12pt]{article}\n")
	b.WriteString("\\usepackage{hyperref}\n")
	b.WriteString("\\usepackage{fancyhdr}\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString("\\usepackage[normalem]{ulem}\n")
	b.WriteString("\\setlength{\\headheight}{15pt}\n")
	if persian {
		b.WriteString("\\usepackage{xepersian}\n")
		fmt.Fprintf(&b, "\\settextfont{%s}\n", pick(s.PersianFont, DefaultPersianFont))
	} else {
		b.WriteString("\\usepackage[utf8]{inputenc}\n")
	}
	fmt.Fprintf(&b, "\\hypersetup{colorlinks=true, linkcolor=blue, urlcolor=blue, pdftitle={%s}", title)
	if s.Author != "" {
		fmt.Fprintf(&b, ", pdfauthor={%s}", EscapeLaTeX(s.Author))
	}
	b.WriteString("}\n")
	b.WriteString("\\pagestyle{fancy}\n\\fancyhf{}\n\\rhead{\\thepage}\n")
	b.WriteString("\\begin{document}\n\n")

	b.WriteString("\\begin{titlepage}\n\\centering\n\\vspace*{5cm}\n")
	fmt.Fprintf(&b, "{\\Huge\\bfseries %s \\par}\n", title)
	if s.Author != "" {
		fmt.Fprintf(&b, "\\vspace{1cm}\n{\\Large %s \\par}\n", EscapeLaTeX(s.Author))
	}
	b.WriteString("\\vfill\n\\end{titlepage}\n\n")
	b.WriteString("\\tableofcontents\n\\newpage\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "\\addcontentsline{toc}{section}{Entry: %s}\n", entry.Day())
		fmt.Fprintf(&b, "\\section*{Entry: %s}\n", entry.Day())
		b.WriteString(MarkdownToLaTeX(entry.Body))
		b.WriteString("\n\n\\newpage\n\n")
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

// MarkdownToLaTeX converts an entry body to LaTeX body markup.
func MarkdownToLaTeX(body string) string {
	w := &latexWriter{}
	for _, block := range markup.Parse(body) {
		w.block(block)
	}
	w.endLists()
	w.setQuote(false)
	return strings.TrimRight(w.b.String(), "\n")
}

type latexWriter struct {
	b     strings.Builder
	lists []bool // ordered flag per open list level
	quote bool
}

func (w *latexWriter) block(block markup.Block) {
	if block.Kind != markup.ListItem {
		if block.Indent > 0 {
			w.closeLists(block.Indent)
		} else {
			w.endLists()
		}
	}
	w.setQuote(block.Quote)

	switch block.Kind {
	case markup.Heading:
		fmt.Fprintf(&w.b, "%s{%s}\n\n", latexHeading(block.Level), latexSpans(block.Spans))
	case markup.Paragraph:
		w.b.WriteString(latexSpans(block.Spans))
		w.b.WriteString("\n\n")
	case markup.Code:
		fmt.Fprintf(&w.b, "\\begin{verbatim}\n%s\n\\end{verbatim}\n\n", block.Code)
	case markup.Rule:
		w.b.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n\n")
	case markup.ListItem:
		w.item(block)
	}
}

func (w *latexWriter) item(block markup.Block) {
	w.closeLists(block.Level)
	if len(w.lists) == block.Level && w.lists[block.Level-1] != block.Ordered {
		w.closeLists(block.Level - 1)
	}
	for len(w.lists) < block.Level {
		w.lists = append(w.lists, block.Ordered)
		if block.Ordered {
			w.b.WriteString("\\begin{enumerate}\n")
			if depth := len(w.lists); block.Number > 1 && depth <= len(enumCounters) {
				fmt.Fprintf(&w.b, "\\setcounter{%s}{%d}\n", enumCounters[depth-1], block.Number-1)
			}
		} else {
			w.b.WriteString("\\begin{itemize}\n")
		}
		if len(w.lists) < block.Level {
			w.b.WriteString("\\item[]\n")
		}
	}
	fmt.Fprintf(&w.b, "\\item %s\n", latexSpans(block.Spans))
}

// closeLists closes open list environments until depth remain.
func (w *latexWriter) closeLists(depth int) {
	for len(w.lists) > depth {
		last := len(w.lists) - 1
		if w.lists[last] {
			w.b.WriteString("\\end{enumerate}\n")
		} else {
			w.b.WriteString("\\end{itemize}\n")
		}
		w.lists = w.lists[:last]
	}
}

// endLists closes every open list and ends the paragraph.
func (w *latexWriter) endLists() {
	if len(w.lists) > 0 {
		w.closeLists(0)
		w.b.WriteString("\n")
	}
}

func (w *latexWriter) setQuote(quote bool) {
	if quote == w.quote {
		return
	}
	w.endLists()
	if quote {
		w.b.WriteString("\\begin{quote}\n")
	} else {
		w.b.WriteString("\\end{quote}\n\n")
	}
	w.quote = quote
}

func latexHeading(level int) string {
	switch level {
	case 1:
		return "\\section*"
	case 2:
		return "\\subsection*"
	case 3:
		return "\\subsubsection*"
	default:
		return "\\paragraph"
	}
}

func latexSpans(spans []markup.Span) string {
	var b strings.Builder
	for _, span := range spans {
		if span.Break {
			b.WriteString("\\\\\n")
			continue
		}
		text := EscapeLaTeX(span.Text)
		if span.Code {
			text = "\\texttt{" + text + "}"
		}
		if span.Strike {
			text = "\\sout{" + text + "}"
		}
		if span.Italic {
			text = "\\textit{" + text + "}"
		}
		if span.Bold {
			text = "\\textbf{" + text + "}"
		}
		if span.URL != "" {
			text = "\\href{" + latexURLEscapes.Replace(span.URL) + "}{" + text + "}"
		}
		b.WriteString(text)
	}
	return b.String()
}
