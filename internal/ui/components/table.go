// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/util"
)

// =============================================================================
// RESULT TABLE
// =============================================================================

// maxCellWidth caps a single column so one long value cannot push the
// rest of the table off screen.
const maxCellWidth = 32

// DataTable renders tabular query results.
type DataTable struct {
	Table    *model.ResultTable
	MaxRows  int
	MaxWidth int
}

// NewDataTable creates a data table with display limits applied.
func NewDataTable(table *model.ResultTable, maxRows int) DataTable {
	if maxRows <= 0 {
		maxRows = 20
	}
	return DataTable{
		Table:    table,
		MaxRows:  maxRows,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the table.
func (d *DataTable) SetMaxWidth(width int) {
	d.MaxWidth = width
}

// Render renders the table with a header row, up to MaxRows data rows,
// and a row-count footer. Rows beyond MaxRows produce a truncation
// notice rather than being silently dropped.
func (d DataTable) Render() string {
	if d.Table == nil || d.Table.IsEmpty() {
		return ""
	}

	cols := d.Table.Columns
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = runewidth.StringWidth(col.Name)
	}

	shown := d.Table.Rows
	hidden := 0
	if len(shown) > d.MaxRows {
		hidden = len(shown) - d.MaxRows
		shown = shown[:d.MaxRows]
	}

	// Measure cells before rendering so columns line up.
	cells := make([][]string, len(shown))
	for r, row := range shown {
		cells[r] = make([]string, len(cols))
		for i, col := range cols {
			v := FormatCell(row[col.Name])
			if runewidth.StringWidth(v) > maxCellWidth {
				v = util.TruncateWidth(v, maxCellWidth)
			}
			cells[r][i] = v
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	theme := styles.NewTheme()
	var sb strings.Builder

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = theme.TableHeader.Render(util.PadRight(col.Name, widths[i]))
	}
	sb.WriteString(strings.Join(headers, "  "))
	sb.WriteByte('\n')

	seps := make([]string, len(cols))
	for i := range cols {
		seps[i] = strings.Repeat("─", widths[i])
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Overlay).Render(strings.Join(seps, "──")))
	sb.WriteByte('\n')

	for _, row := range cells {
		padded := make([]string, len(row))
		for i, v := range row {
			padded[i] = theme.TableCell.Render(util.PadRight(v, widths[i]))
		}
		sb.WriteString(strings.Join(padded, "  "))
		sb.WriteByte('\n')
	}

	count := d.Table.RowCount
	if count <= 0 {
		count = len(d.Table.Rows)
	}
	footer := theme.TableRowCount.Render(fmt.Sprintf("%d row(s)", count))
	if hidden > 0 {
		footer += "  " + theme.TableTruncated.Render(fmt.Sprintf("showing first %d, %d more hidden", d.MaxRows, hidden))
	} else if d.Table.Truncated {
		footer += "  " + theme.TableTruncated.Render("results truncated by server")
	}
	sb.WriteString(footer)

	maxWidth := d.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.TableBox.MaxWidth(maxWidth).Render(sb.String())
}

// FormatCell converts a decoded JSON cell value to display text.
// Whole-number floats drop the decimal point so counts read naturally.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", x)
	}
}
