package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const tableCellEllipsis = "..."

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row ...string) {
	builder.rows = append(builder.rows, row)
}

// Len returns the number of rows added so far.
func (builder *TableBuilder) Len() int {
	return len(builder.rows)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned table, separating
// columns with two spaces and the header from the body with a rule.
func FormatTable(headers []string, rows [][]string) string {
	normalizedHeaders := make([]string, len(headers))
	widths := make([]int, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
		widths[i] = lipgloss.Width(normalizedHeaders[i])
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(normalizedRow[i]))
			}
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			padding := 0
			if i < len(widths) {
				padding = widths[i] - lipgloss.Width(cell)
			}
			builder.WriteString(strings.Repeat(" ", padding+2))
		}
	}

	writeRow(normalizedHeaders)
	total := 0
	for _, width := range widths {
		total += width
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	builder.WriteString(strings.Repeat("-", total))
	builder.WriteByte('\n')
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits a cell to width visible characters, ending
// shortened values with an ellipsis. ANSI sequences are preserved.
func TruncateTableCell(value string, width int) string {
	value = normalizeTableCell(value)
	if lipgloss.Width(value) <= width {
		return value
	}
	if width <= len(tableCellEllipsis) {
		return tableCellEllipsis
	}
	return truncate.StringWithTail(value, uint(width), tableCellEllipsis)
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}
