package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/dbquery/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as an aligned text table with a leading row number
// column.
type Table struct {
	style table.Style
}

func NewTable() *Table {
	return &Table{style: table.StyleLight}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	tableHeaders := table.Row{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}

	index := 0
	if opts != nil {
		index = opts.ChunkStart
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		indexedRow := table.Row{index + 1}
		for _, v := range row {
			if v == nil {
				v = "NULL"
			}
			indexedRow = append(indexedRow, v)
		}
		tableRows = append(tableRows, indexedRow)
		index++
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(tf.style)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}
