// Package table renders resolved symbols as aligned text tables.
package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// getTerminalWidth returns the width of stdout, or 120 when it is not a terminal
func getTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// TableStyle defines the visual styling for tables
type TableStyle struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Separator string
}

// PlainTableStyle returns a plain, boring table style with no colors
func PlainTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1),
		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),
		Separator: "|",
	}
}

// StyledTableStyle returns a colorful, styled table
func StyledTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1),
		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),
		Separator: "|",
	}
}

// Table represents a simple table renderer using lipgloss
type Table struct {
	headers     []string
	rows        [][]string
	style       TableStyle
	maxWidth    int
	alignment   []lipgloss.Position
	columnWidth []int
}

// NewTable creates a new table with plain styling
func NewTable() *Table {
	return &Table{style: PlainTableStyle()}
}

// NewStyledTable creates a new table with colorful styling
func NewStyledTable() *Table {
	return &Table{style: StyledTableStyle()}
}

// NewSymbolTable creates a table with the columns used to list resolved symbols
func NewSymbolTable(styled bool) *Table {
	t := NewTable()
	if styled {
		t = NewStyledTable()
	}
	t.SetHeaders([]string{"Encoded", "NID", "Library", "Module"})
	return t
}

// AppendSymbol adds a resolved symbol row
func (t *Table) AppendSymbol(encoded string, info nid.SymbolInfo) {
	t.AppendRow([]string{encoded, fmt.Sprintf("%#016x", info.NID), info.Library, info.Module})
}

// SetHeaders sets the table headers
func (t *Table) SetHeaders(headers []string) {
	t.headers = headers
	if len(t.alignment) != len(headers) {
		t.alignment = make([]lipgloss.Position, len(headers))
		for i := range t.alignment {
			t.alignment[i] = lipgloss.Left
		}
	}
}

// SetAlignment sets the alignment of the leading columns, in order.
// Call it after SetHeaders; extra positions are ignored.
func (t *Table) SetAlignment(aligns ...lipgloss.Position) {
	for i, align := range aligns {
		if i < len(t.alignment) {
			t.alignment[i] = align
		}
	}
}

// AppendRow adds a single row to the table
func (t *Table) AppendRow(row []string) {
	t.rows = append(t.rows, row)
}

// AppendBulk adds multiple rows to the table
func (t *Table) AppendBulk(rows [][]string) {
	t.rows = append(t.rows, rows...)
}

// FitTerminal truncates the last column so rows fit the width of stdout
func (t *Table) FitTerminal() {
	t.maxWidth = getTerminalWidth()
}

// SetMaxWidth truncates the last column so rows fit in width cells (0 disables)
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// calculateColumnWidths determines the optimal width for each column
func (t *Table) calculateColumnWidths() {
	if len(t.headers) == 0 {
		return
	}

	t.columnWidth = make([]int, len(t.headers))

	for i, header := range t.headers {
		t.columnWidth[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(t.columnWidth) && len(cell) > t.columnWidth[i] {
				t.columnWidth[i] = len(cell)
			}
		}
	}
	for i := range t.columnWidth {
		t.columnWidth[i] += 2 // Account for padding
	}

	if t.maxWidth <= 0 {
		return
	}
	total := len(t.style.Separator) * (len(t.columnWidth) - 1)
	for _, w := range t.columnWidth {
		total += w
	}
	last := len(t.columnWidth) - 1
	if over := total - t.maxWidth; over > 0 {
		t.columnWidth[last] = max(t.columnWidth[last]-over, 3)
	}
}

// renderRow renders a single row with proper alignment and styling
func (t *Table) renderRow(row []string, isHeader bool) string {
	var cells []string

	for i, width := range t.columnWidth {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if inner := width - 2; len(cell) > inner {
			cell = cell[:max(inner, 0)]
		}
		align := lipgloss.Left
		if i < len(t.alignment) {
			align = t.alignment[i]
		}

		style := t.style.Cell
		if isHeader {
			style = t.style.Header
		}
		cells = append(cells, style.Width(width).Align(align).Render(cell))
	}

	return strings.Join(cells, t.style.Separator)
}

// Render generates the complete table as a string
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	t.calculateColumnWidths()

	var output strings.Builder

	output.WriteString(t.renderRow(t.headers, true))
	output.WriteString("\n")

	var separators []string
	for _, width := range t.columnWidth {
		separators = append(separators, strings.Repeat("-", width))
	}
	output.WriteString(strings.Join(separators, "+"))
	output.WriteString("\n")

	for _, row := range t.rows {
		output.WriteString(t.renderRow(row, false))
		output.WriteString("\n")
	}

	return strings.TrimRight(output.String(), "\n")
}
