// Package report renders imports and validation results for the terminal.
package report

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// SetColor toggles ANSI colors for every writer in this package.
func SetColor(enabled bool) {
	color.Enable = enabled
}

// Table renders rows in aligned columns. Widths are measured in terminal
// cells, so wide runes in filenames do not break alignment.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, widths, color.Bold.Sprint)

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	t.writeRow(&sb, rule, widths, nil)

	for _, row := range t.rows {
		t.writeRow(&sb, row, widths, nil)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeRow pads before styling so escape codes do not count towards width.
func (t *Table) writeRow(sb *strings.Builder, cells []string, widths []int, style func(...any) string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, widths[i])
		}
		if style != nil {
			cell = style(cell)
		}
		sb.WriteString(cell)
	}
	sb.WriteString("\n")
}
