package markup

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind identifies the shape of a Block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading
	Code
	ListItem
	Rule
)

// Block is one block-level element of a body. Nested structure is flattened:
// list nesting is kept as Level and block quotes as the Quote flag.
type Block struct {
	Kind BlockKind

	// Level is the heading level for headings and the nesting depth
	// (starting at 1) for list items.
	Level int

	// Indent is the list nesting depth of the item a block continues, zero
	// outside lists. For list items it is the depth of the enclosing item.
	Indent int

	Ordered  bool
	Number   int
	Quote    bool
	Spans    []Span
	Code     string
	Language string
}

// Text returns the block's content without any markup.
func (b Block) Text() string {
	if b.Kind == Code {
		return b.Code
	}
	return SpansText(b.Spans)
}

// Span is a run of inline text sharing one style.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Strike bool
	URL    string

	// Break marks a line break between runs.
	Break bool
}

func (s Span) with(text string) Span {
	s.Text = text
	s.Break = false
	return s
}

func (s Span) sameStyle(o Span) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Code == o.Code &&
		s.Strike == o.Strike && s.URL == o.URL && !s.Break && !o.Break
}

// SpansText joins span text, turning breaks into newlines.
func SpansText(spans []Span) string {
	var builder strings.Builder
	for _, span := range spans {
		if span.Break {
			builder.WriteByte('\n')
			continue
		}
		builder.WriteString(span.Text)
	}
	return builder.String()
}

// Parse parses a Markdown body into a flat sequence of blocks. YAML front
// matter is skipped.
func Parse(body string) []Block {
	src := []byte(Content(body))
	doc := htmlMarkdown.Parser().Parse(text.NewReader(src))
	p := &parser{src: src}
	p.children(doc, blockContext{})
	return p.out
}

type blockContext struct {
	quote bool
	depth int
}

type parser struct {
	src []byte
	out []Block
}

func (p *parser) children(parent ast.Node, ctx blockContext) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n, ctx)
	}
}

func (p *parser) block(n ast.Node, ctx blockContext) {
	switch node := n.(type) {
	case *ast.Heading:
		p.emit(Block{Kind: Heading, Level: node.Level, Spans: p.inlines(node, Span{})}, ctx)
	case *ast.Paragraph, *ast.TextBlock:
		p.emit(Block{Kind: Paragraph, Spans: p.inlines(node, Span{})}, ctx)
	case *ast.FencedCodeBlock:
		p.emit(Block{Kind: Code, Code: p.lines(node), Language: string(node.Language(p.src))}, ctx)
	case *ast.CodeBlock:
		p.emit(Block{Kind: Code, Code: p.lines(node)}, ctx)
	case *ast.HTMLBlock:
		p.emit(Block{Kind: Paragraph, Spans: []Span{{Text: p.lines(node)}}}, ctx)
	case *ast.ThematicBreak:
		p.emit(Block{Kind: Rule}, ctx)
	case *ast.Blockquote:
		p.children(node, blockContext{quote: true, depth: ctx.depth})
	case *ast.List:
		p.list(node, ctx)
	case *east.Table:
		p.table(node, ctx)
	default:
		p.children(n, ctx)
	}
}

func (p *parser) emit(b Block, ctx blockContext) {
	b.Quote = ctx.quote
	b.Indent = ctx.depth
	b.Spans = mergeSpans(b.Spans)
	p.out = append(p.out, b)
}

// list emits one ListItem per item. The item's first paragraph carries the
// marker; anything after it is emitted one level deeper.
func (p *parser) list(list *ast.List, ctx blockContext) {
	number := list.Start
	inner := blockContext{quote: ctx.quote, depth: ctx.depth + 1}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := Block{Kind: ListItem, Level: inner.depth, Ordered: list.IsOrdered(), Number: number}
		child := item.FirstChild()
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			marker.Spans = p.inlines(child, Span{})
			child = child.NextSibling()
		}
		p.emit(marker, ctx)
		for ; child != nil; child = child.NextSibling() {
			p.block(child, inner)
		}
		number++
	}
}

// table flattens each row into a paragraph with cells separated by " | ".
func (p *parser) table(table *east.Table, ctx blockContext) {
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*east.TableHeader)
		var spans []Span
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				spans = append(spans, Span{Text: " | "})
			}
			spans = append(spans, p.inlines(cell, Span{Bold: header})...)
		}
		p.emit(Block{Kind: Paragraph, Spans: spans}, ctx)
	}
}

func (p *parser) inlines(parent ast.Node, style Span) []Span {
	var spans []Span
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			spans = append(spans, style.with(string(n.Segment.Value(p.src))))
			if n.SoftLineBreak() || n.HardLineBreak() {
				spans = append(spans, Span{Break: true})
			}
		case *ast.String:
			spans = append(spans, style.with(string(n.Value)))
		case *ast.CodeSpan:
			code := style
			code.Code = true
			spans = append(spans, code.with(p.plain(n)))
		case *ast.Emphasis:
			emph := style
			if n.Level >= 2 {
				emph.Bold = true
			} else {
				emph.Italic = true
			}
			spans = append(spans, p.inlines(n, emph)...)
		case *east.Strikethrough:
			strike := style
			strike.Strike = true
			spans = append(spans, p.inlines(n, strike)...)
		case *ast.Link:
			link := style
			link.URL = string(n.Destination)
			spans = append(spans, p.inlines(n, link)...)
		case *ast.AutoLink:
			link := style
			link.URL = string(n.URL(p.src))
			spans = append(spans, link.with(string(n.Label(p.src))))
		case *ast.RawHTML:
			var raw strings.Builder
			for i := range n.Segments.Len() {
				seg := n.Segments.At(i)
				raw.Write(seg.Value(p.src))
			}
			spans = append(spans, style.with(raw.String()))
		case *east.TaskCheckBox:
			box := "[ ] "
			if n.IsChecked {
				box = "[x] "
			}
			spans = append(spans, style.with(box))
		default:
			// images contribute their alt text
			spans = append(spans, p.inlines(c, style)...)
		}
	}
	return spans
}

// plain collects the literal text under n.
func (p *parser) plain(n ast.Node) string {
	var builder strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			builder.Write(t.Segment.Value(p.src))
		case *ast.String:
			builder.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return builder.String()
}

// lines joins the raw source lines of a block node.
func (p *parser) lines(n ast.Node) string {
	var builder strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		builder.Write(seg.Value(p.src))
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

func mergeSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	merged := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Text == "" && !span.Break {
			continue
		}
		if last := len(merged) - 1; last >= 0 && merged[last].sameStyle(span) {
			merged[last].Text += span.Text
			continue
		}
		merged = append(merged, span)
	}
	return merged
}
