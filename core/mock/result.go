package mock

import (
	"fmt"
	"sync"
	"time"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

var _ core.ResultStream = (*ResultStream)(nil)

type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	config  *resultStreamConfig

	mu         sync.Mutex
	closeCount int
	consumed   int
}

func makeDefaultHeader(rows []core.Row) core.Header {
	var header core.Header
	if len(rows) > 0 {
		for i := range rows[0] {
			header = append(header, fmt.Sprintf("header_%d", i))
		}
	}
	return header
}

// NewResultStream returns a mocked result stream with provided rows.
// It creates a header that matches the number of columns in the first row
// in form of: <header_0>, <header_1>, etc.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		nextSleep: 0,
		meta:      &core.Meta{},
		header:    makeDefaultHeader(rows),
		failAfter: -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := builders.NextSlice(rows, func(r core.Row) core.Row { return r })

	rs := &ResultStream{
		hasNext: hasNext,
		config:  config,
	}

	rs.next = func() (core.Row, error) {
		if config.failAfter >= 0 && rs.consumed >= config.failAfter {
			return nil, config.failErr
		}
		row, err := next()
		if err == nil {
			rs.consumed++
		}
		return row, err
	}

	return rs
}

func (rs *ResultStream) Meta() *core.Meta {
	return rs.config.meta
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	time.Sleep(rs.config.nextSleep)
	return rs.next()
}

func (rs *ResultStream) HasNext() bool {
	if rs.config.failAfter >= 0 && rs.consumed >= rs.config.failAfter {
		return true
	}
	return rs.hasNext()
}

func (rs *ResultStream) Close() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.closeCount++
}

// CloseCount reports how many times Close was called.
func (rs *ResultStream) CloseCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.closeCount
}

// Consumed reports how many rows were read from the stream.
func (rs *ResultStream) Consumed() int {
	return rs.consumed
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{i, fmt.Sprintf("row_%d", i)})
	}
	return rows
}
