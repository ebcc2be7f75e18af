package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kndndrj/dbquery/core"
)

var _ core.Formatter = (*CSV)(nil)

// CSV renders the header and rows as comma separated values. NULL values
// become empty fields.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) records(header core.Header, rows []core.Row) [][]string {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		csvRow := make([]string, len(row))
		for i, rec := range row {
			if rec == nil {
				continue
			}
			csvRow[i] = fmt.Sprint(rec)
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(cf.records(header, rows))
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
