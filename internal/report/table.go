package report

import (
	"strings"

	"github.com/pkg/errors"
)

// Alignment controls horizontal cell alignment within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ErrInvalidRow is returned when a row's cell count does not match the header
// count.
var ErrInvalidRow = errors.New("row length does not match header length")

// Table accumulates pre-formatted cell strings and renders a fixed-width text
// table. Column width is the widest of header and cells plus two characters
// of padding.
type Table struct {
	headers []string
	aligns  []Alignment
	rows    [][]string
}

// NewTable creates a table with the given headers. Alignments may be nil or
// shorter than headers; unspecified columns default to left.
func NewTable(headers []string, aligns []Alignment) *Table {
	return &Table{
		headers: headers,
		aligns:  aligns,
	}
}

// AddRow appends a row. The cell count must match the header count.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.headers) {
		return errors.Wrapf(ErrInvalidRow, "got %d cells, want %d", len(cells), len(t.headers))
	}
	t.rows = append(t.rows, cells)
	return nil
}

// align returns the alignment for column i
func (t *Table) align(i int) Alignment {
	if i < len(t.aligns) {
		return t.aligns[i]
	}
	return AlignLeft
}

// Render emits the header line, a dashed separator, and one line per row.
// With no rows the header and separator are followed by a blank line; there
// is no "no data" row.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	pad := func(cell string, col int) string {
		fill := strings.Repeat(" ", widths[col]-len(cell))
		if t.align(col) == AlignRight {
			return fill + cell
		}
		return cell + fill
	}

	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = pad(cell, i)
		}
		return "| " + strings.Join(padded, " | ") + " |"
	}

	separator := make([]string, len(widths))
	for i, w := range widths {
		// Dash run spans the full column width including padding
		separator[i] = strings.Repeat("-", w+2)
	}

	lines := []string{
		line(t.headers),
		"|" + strings.Join(separator, "|") + "|",
	}

	if len(t.rows) == 0 {
		lines = append(lines, "")
	} else {
		for _, row := range t.rows {
			lines = append(lines, line(row))
		}
	}

	return strings.Join(lines, "\n")
}
