package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/dialect"
)

var _ core.Driver = (*driver)(nil)

type driver struct {
	data    []core.Row
	config  *adapterConfig
	adapter *Adapter
}

func (d *driver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	data := d.data
	if rows, ok := d.config.queryResults[query]; ok {
		data = rows
	}

	opts := append([]ResultStreamOption{ResultStreamWithMeta(&core.Meta{Query: query})}, d.config.resultStreamOptions...)
	rs := NewResultStream(data, opts...)

	d.adapter.record(query, rs)

	return rs, nil
}

func (d *driver) Schemas(_ context.Context) ([]*catalog.Schema, error) {
	if d.config.schemasErr != nil {
		return nil, d.config.schemasErr
	}
	d.adapter.mu.Lock()
	d.adapter.schemaLoads++
	d.adapter.mu.Unlock()

	return d.config.schemas, nil
}

func (d *driver) Principal(_ context.Context) (string, error) {
	return d.config.principal, nil
}

func (d *driver) Dialect() *dialect.Dialect {
	return d.config.dialect
}

func (d *driver) Close() {
	d.adapter.mu.Lock()
	defer d.adapter.mu.Unlock()
	d.adapter.closed = true
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter is a test double that serves the same rows for every query and
// records what was executed.
type Adapter struct {
	data   []core.Row
	config *adapterConfig

	mu          sync.Mutex
	queries     []string
	streams     []*ResultStream
	schemaLoads int
	closed      bool
}

func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func(context.Context) error),
		queryResults:     make(map[string][]core.Row),
		dialect:          dialect.ANSI,

		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(_ string) (core.Driver, error) {
	return &driver{
		data:    a.data,
		config:  a.config,
		adapter: a,
	}, nil
}

func (a *Adapter) record(query string, rs *ResultStream) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, query)
	a.streams = append(a.streams, rs)
}

// Queries returns the executed SQL texts in order.
func (a *Adapter) Queries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

// Streams returns the result streams handed out, in query order.
func (a *Adapter) Streams() []*ResultStream {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*ResultStream(nil), a.streams...)
}

// SchemaLoads reports how many times the catalog was introspected.
func (a *Adapter) SchemaLoads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.schemaLoads
}

func (a *Adapter) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
