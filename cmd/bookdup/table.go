package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one output column. Titles and author lists come straight
// from catalog metadata and can be arbitrarily long, so free-text columns
// carry a width cap and wrap instead of stretching the whole row.
type column struct {
	header     string
	rightAlign bool
	maxWidth   int
}

// freeTextWidth caps title/author style columns.
const freeTextWidth = 48

func numCol(header string) column  { return column{header: header, rightAlign: true} }
func textCol(header string) column { return column{header: header} }
func wideCol(header string) column { return column{header: header, maxWidth: freeTextWidth} }

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		align := text.AlignLeft
		if col.rightAlign {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.maxWidth,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i := range columns {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		tw.AppendRow(cells)
	}

	return tw.Render()
}
