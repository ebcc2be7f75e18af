package builders

import (
	"sync"

	"github.com/kndndrj/dbquery/core"
)

var _ core.ResultStream = (*ResultStream)(nil)

// ResultStream fills the core.ResultStream interface for all sql dbs
type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	close   func()
	meta    *core.Meta
	header  core.Header
	once    sync.Once
	closed  bool
}

func (r *ResultStream) Meta() *core.Meta {
	return r.meta
}

func (r *ResultStream) Header() core.Header {
	return r.header
}

func (r *ResultStream) HasNext() bool {
	if r.closed {
		return false
	}
	return r.hasNext()
}

func (r *ResultStream) Next() (core.Row, error) {
	row, err := r.next()
	if err != nil || row == nil {
		r.Close()
		return nil, err
	}
	return row, nil
}

// Close runs the close function exactly once.
func (r *ResultStream) Close() {
	r.once.Do(func() {
		r.closed = true
		r.close()
	})
}

// ResultStreamBuilder builds the rows
type ResultStreamBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	header  core.Header
	close   func()
	meta    *core.Meta
}

func NewResultStreamBuilder() *ResultStreamBuilder {
	next, hasNext := NextNil()
	return &ResultStreamBuilder{
		next:    next,
		hasNext: hasNext,
		header:  core.Header{},
		close:   func() {},
		meta:    &core.Meta{},
	}
}

func (b *ResultStreamBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *ResultStreamBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *ResultStreamBuilder) WithHeader(header core.Header) *ResultStreamBuilder {
	b.header = header
	return b
}

func (b *ResultStreamBuilder) WithCloseFunc(fn func()) *ResultStreamBuilder {
	b.close = fn
	return b
}

func (b *ResultStreamBuilder) WithMeta(meta *core.Meta) *ResultStreamBuilder {
	b.meta = meta
	return b
}

func (b *ResultStreamBuilder) Build() *ResultStream {
	return &ResultStream{
		next:    b.next,
		hasNext: b.hasNext,
		header:  b.header,
		close:   b.close,
		meta:    b.meta,
	}
}
