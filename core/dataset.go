package core

import "sync"

// DataSet is a forward-only cursor over the rows of an executed query.
// It is not safe for concurrent use.
type DataSet struct {
	stream ResultStream
	query  string

	row       Row
	err       error
	closed    bool
	closeOnce sync.Once
}

// NewDataSet wraps a result stream. The stream is closed once the data set
// is exhausted, fails or is closed explicitly.
func NewDataSet(stream ResultStream, query string) *DataSet {
	return &DataSet{
		stream: stream,
		query:  query,
	}
}

func (d *DataSet) Header() Header {
	return d.stream.Header()
}

// Query returns the SQL text the data set was produced by.
func (d *DataSet) Query() string {
	return d.query
}

// Next advances to the next row. It returns false when there are no more
// rows, after an error and after Close.
func (d *DataSet) Next() bool {
	if d.closed || d.err != nil {
		return false
	}

	if !d.stream.HasNext() {
		d.row = nil
		d.Close()
		return false
	}

	row, err := d.stream.Next()
	if err != nil {
		d.row = nil
		d.err = &ExecutionError{Query: d.query, Err: err}
		d.Close()
		return false
	}
	if row == nil {
		d.row = nil
		d.Close()
		return false
	}

	d.row = row
	return true
}

// Row returns the current row. It is only valid after Next returned true.
func (d *DataSet) Row() Row {
	return d.row
}

func (d *DataSet) Err() error {
	return d.err
}

// Close releases the underlying cursor. It can be called multiple times.
func (d *DataSet) Close() {
	d.closeOnce.Do(func() {
		d.closed = true
		d.stream.Close()
	})
}
