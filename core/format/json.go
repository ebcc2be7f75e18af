package format

import (
	"encoding/json"
	"fmt"

	"github.com/kndndrj/dbquery/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON renders rows as an array of objects keyed by the header.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) records(header core.Header, rows []core.Row) []map[string]any {
	data := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		record := make(map[string]any, len(row))
		for i, val := range row {
			var h string
			if i < len(header) && header[i] != "" {
				h = header[i]
			} else {
				h = fmt.Sprintf("<unknown-field-%d>", i)
			}
			record[h] = val
		}
		data = append(data, record)
	}

	return data
}

func (jf *JSON) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	out, err := json.MarshalIndent(jf.records(header, rows), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
