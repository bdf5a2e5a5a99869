package chunker

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"paydocs/internal/adapter/analyzer"
	"paydocs/internal/domain"
	"paydocs/internal/port"
)

// DefaultHeadingDepth is the deepest heading level that still starts a new
// chunk. Deeper headings append into the current section.
const DefaultHeadingDepth = 4

var _ port.Chunker = (*MarkdownChunker)(nil)

// MarkdownChunker splits a markdown document into header-scoped chunks by
// walking the goldmark AST (GFM extension for tables). The chunker itself is
// stateless; all traversal state lives in a per-invocation struct, so one
// chunker is safe for concurrent use.
type MarkdownChunker struct {
	headingDepth int
	md           goldmark.Markdown
}

func NewMarkdownChunker(headingDepth int) *MarkdownChunker {
	if headingDepth <= 0 {
		headingDepth = DefaultHeadingDepth
	}
	return &MarkdownChunker{
		headingDepth: headingDepth,
		md:           goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// traversal is the mutable state of a single Chunk call: the active header
// stack, the output buffer, the pending table region, and flushed chunks.
type traversal struct {
	src          []byte
	headingDepth int
	stack        []string
	buf          strings.Builder
	table        tableBuilder
	chunks       []domain.EnhancedChunk
	firstText    string
}

// Chunk parses one document into header-scoped chunks plus metadata.
func (c *MarkdownChunker) Chunk(markdown string) (*port.ChunkResult, error) {
	meta, body := extractFrontMatter(markdown)

	tr := &traversal{src: []byte(body), headingDepth: c.headingDepth}
	root := c.md.Parser().Parse(gtext.NewReader(tr.src))

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			tr.heading(n.(*ast.Heading))
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock:
			tr.paragraph(n)
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			tr.codeBlock(n)
			return ast.WalkSkipChildren, nil
		case ast.KindList:
			tr.list(n.(*ast.List))
			return ast.WalkSkipChildren, nil
		case east.KindTable:
			tr.tableRegion(n)
			return ast.WalkSkipChildren, nil
		default:
			// Unknown node kinds are skipped silently; containers such as
			// blockquotes still get their children visited.
			return ast.WalkContinue, nil
		}
	})
	if err != nil {
		return nil, err
	}

	// Remainder after the last heading.
	tr.flush()

	return &port.ChunkResult{
		Chunks:      tr.chunks,
		Metadata:    meta,
		RawMarkdown: markdown,
		FirstText:   tr.firstText,
	}, nil
}

func (t *traversal) heading(h *ast.Heading) {
	title := strings.TrimSpace(flatten(h, t.src))
	if h.Level <= t.headingDepth {
		t.flush()
	}
	t.updateStack(h.Level, title)
	t.write(strings.Repeat("#", h.Level) + " " + title)
}

// updateStack applies the header-stack rule: depth 1 resets the stack, any
// deeper heading truncates to its depth and replaces its own slot. Skipped
// intermediate depths stay blank.
func (t *traversal) updateStack(depth int, title string) {
	if depth == 1 {
		t.stack = []string{title}
		return
	}
	if len(t.stack) > depth {
		t.stack = t.stack[:depth]
	}
	for len(t.stack) < depth {
		t.stack = append(t.stack, "")
	}
	t.stack[depth-1] = title
}

func (t *traversal) paragraph(n ast.Node) {
	text := strings.TrimSpace(flatten(n, t.src))
	if text == "" {
		return
	}
	if t.firstText == "" {
		t.firstText = text
	}
	t.write(text)
}

func (t *traversal) codeBlock(n ast.Node) {
	var sb strings.Builder
	sb.WriteString("```")
	if fcb, ok := n.(*ast.FencedCodeBlock); ok {
		if lang := fcb.Language(t.src); lang != nil {
			sb.Write(lang)
		}
	}
	sb.WriteByte('\n')
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(t.src))
	}
	sb.WriteString("```")
	t.write(sb.String())
}

func (t *traversal) list(l *ast.List) {
	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		text := strings.Join(strings.Fields(flatten(item, t.src)), " ")
		if text == "" {
			continue
		}
		items = append(items, "- "+text)
	}
	if len(items) > 0 {
		t.write(strings.Join(items, "\n"))
	}
}

// tableRegion buffers one table subtree into the table builder and emits the
// padded block when the region ends. A new table arriving while one is
// pending flushes the pending block first.
func (t *traversal) tableRegion(n ast.Node) {
	if !t.table.Empty() {
		t.write(t.table.Render())
		t.table.Reset()
	}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(flatten(cell, t.src)))
		}
		if row.Kind() == east.KindTableHeader {
			t.table.SetHeader(cells)
		} else {
			t.table.AddRow(cells)
		}
	}
	t.write(t.table.Render())
	t.table.Reset()
}

func (t *traversal) write(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	t.buf.WriteString(s)
	t.buf.WriteString("\n\n")
}

// flush emits the buffered section as an EnhancedChunk with a by-value copy
// of the header stack. Whitespace-only buffers never emit.
func (t *traversal) flush() {
	if !t.table.Empty() {
		t.write(t.table.Render())
		t.table.Reset()
	}
	content := strings.TrimSpace(t.buf.String())
	t.buf.Reset()
	if content == "" {
		return
	}
	stack := make([]string, len(t.stack))
	copy(stack, t.stack)
	t.chunks = append(t.chunks, domain.EnhancedChunk{
		Content:         content,
		HeaderStack:     stack,
		EstimatedTokens: analyzer.EstimateTokens(content),
	})
}

// flatten collects the text of a node's descendants. Inline code keeps its
// backticks so the token estimator can price it.
func flatten(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if c.Kind() == ast.KindCodeSpan {
			sb.WriteByte('`')
			return ast.WalkContinue, nil
		}
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.URL(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
