package chunker

import (
	"strings"
	"unicode/utf8"
)

// tableBuilder buffers rows of a GFM table region and renders them back as
// a markdown table with every column padded to equal width. State is scoped
// to a single chunker invocation.
type tableBuilder struct {
	header []string
	rows   [][]string
}

func (t *tableBuilder) SetHeader(cells []string) {
	t.header = cells
}

func (t *tableBuilder) AddRow(cells []string) {
	t.rows = append(t.rows, cells)
}

func (t *tableBuilder) Empty() bool {
	return t.header == nil && len(t.rows) == 0
}

func (t *tableBuilder) Reset() {
	t.header = nil
	t.rows = nil
}

// Render emits the buffered region as a "| … |" / "|---|" block.
func (t *tableBuilder) Render() string {
	if t.Empty() {
		return ""
	}

	widths := t.columnWidths()

	var sb strings.Builder
	if t.header != nil {
		writeRow(&sb, t.header, widths)
		writeSeparator(&sb, widths)
	}
	for _, row := range t.rows {
		writeRow(&sb, row, widths)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (t *tableBuilder) columnWidths() []int {
	var widths []int
	grow := func(cells []string) {
		for i, c := range cells {
			w := utf8.RuneCountInString(c)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	grow(t.header)
	for _, row := range t.rows {
		grow(row)
	}
	// Separator cells need at least three dashes.
	for i, w := range widths {
		if w < 3 {
			widths[i] = 3
		}
	}
	return widths
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteByte('|')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteByte(' ')
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)))
		sb.WriteString(" |")
	}
	sb.WriteByte('\n')
}

func writeSeparator(sb *strings.Builder, widths []int) {
	sb.WriteByte('|')
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteByte('|')
	}
	sb.WriteByte('\n')
}
