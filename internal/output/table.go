package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates adjacent columns.
const columnGap = "  "

// Table renders rows of pre-styled cells in aligned columns. Widths are
// measured on visible characters, so cells may carry ANSI styling.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
}

// NewTable creates a table with the given column headers. Columns are
// left-aligned unless marked with AlignRight.
func NewTable(headers ...string) *Table {
	t := &Table{
		headers: headers,
		widths:  make([]int, len(headers)),
		right:   make([]bool, len(headers)),
	}
	t.measure(headers)
	return t
}

// AlignRight right-aligns the given zero-based columns. Out-of-range
// indexes are ignored.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow appends a row. Missing cells render blank; cells beyond the header
// count are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.measure(row)
	t.rows = append(t.rows, row)
}

func (t *Table) measure(cells []string) {
	for i, c := range cells {
		t.widths[i] = max(t.widths[i], visualLen(c))
	}
}

// Render returns the header, a rule and every row, each newline-terminated.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, StyleHeader.Render)

	rule := make([]string, len(t.widths))
	for i, w := range t.widths {
		rule[i] = strings.Repeat("─", w)
	}
	t.writeRow(&sb, rule, StyleMuted.Render)

	for _, row := range t.rows {
		t.writeRow(&sb, row, nil)
	}
	return sb.String()
}

// writeRow aligns each cell to its column width, then applies style to the
// padded cell when style is non-nil.
func (t *Table) writeRow(sb *strings.Builder, cells []string, style func(...string) string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		var s string
		if t.right[i] {
			s = padLeft(cell, t.widths[i])
		} else {
			s = pad(cell, t.widths[i])
		}
		if style != nil {
			s = style(s)
		}
		sb.WriteString(s)
	}
	sb.WriteByte('\n')
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// visualLen returns the printed width of s, ignoring ANSI escape sequences.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad right-pads s with spaces to the given visible width.
func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft left-pads s with spaces to the given visible width.
func padLeft(s string, width int) string {
	if n := visualLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
