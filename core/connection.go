package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/dialect"
	"github.com/kndndrj/dbquery/query"
)

var ErrNoDialect = errors.New("driver did not provide a dialect")

type (
	// Adapter is an object which allows to connect to database via url
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Driver is an interface for a specific database driver
	Driver interface {
		// Query runs the SQL text and streams back the rows.
		Query(ctx context.Context, query string) (ResultStream, error)
		// Schemas introspects the backend metadata.
		Schemas(ctx context.Context) ([]*catalog.Schema, error)
		// Principal returns the name of the connected user.
		Principal(ctx context.Context) (string, error)
		Dialect() *dialect.Dialect
		Close()
	}
)

type ConnectionID string

// Connection is the data context of a single database. It owns the driver,
// caches the catalog and turns query models into SQL of the driver's dialect.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver   Driver
	rewriter *dialect.Rewriter

	mu        sync.Mutex
	catalog   *catalog.Catalog
	principal string
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

func NewConnection(params *ConnectionParams, adapter Adapter) (*Connection, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	d := driver.Dialect()
	if d == nil {
		driver.Close()
		return nil, ErrNoDialect
	}

	c := &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver:   driver,
		rewriter: dialect.NewRewriter(d),
	}

	return c, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

func (c *Connection) GetURL() string {
	return c.params.URL
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

func (c *Connection) Dialect() *dialect.Dialect {
	return c.rewriter.Dialect()
}

// Catalog returns the cached catalog, loading it on first use.
func (c *Connection) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil {
		return c.catalog, nil
	}

	return c.load(ctx)
}

// Refresh reloads the catalog from the backend.
func (c *Connection) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(ctx)
}

// load must be called with mu held.
func (c *Connection) load(ctx context.Context) (*catalog.Catalog, error) {
	var (
		principal string
		schemas   []*catalog.Schema
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.driver.Principal(gctx)
		if err != nil {
			return fmt.Errorf("driver.Principal: %w", err)
		}
		principal = p
		return nil
	})
	g.Go(func() error {
		s, err := c.driver.Schemas(gctx)
		if err != nil {
			return fmt.Errorf("driver.Schemas: %w", err)
		}
		schemas = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat, err := catalog.NewCatalog(schemas...)
	if err != nil {
		return nil, fmt.Errorf("catalog.NewCatalog: %w", err)
	}

	c.catalog = cat
	c.principal = principal

	return cat, nil
}

// DefaultSchema resolves the schema of the connected principal.
func (c *Connection) DefaultSchema(ctx context.Context) (*catalog.Schema, error) {
	cat, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	principal := c.principal
	c.mu.Unlock()

	d := c.Dialect()
	return cat.ResolveDefaultSchema(principal, d.NormalizeIdentifier, d.DefaultSchemas...)
}

// Table looks up a table. An empty schema name means the default schema.
func (c *Connection) Table(ctx context.Context, schema, table string) (*catalog.Table, error) {
	if schema == "" {
		s, err := c.DefaultSchema(ctx)
		if err != nil {
			return nil, err
		}
		return s.TableByName(table)
	}

	cat, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.TableByName(schema, table)
}

// Query starts a new query builder.
func (c *Connection) Query() *query.Builder {
	return query.NewBuilder()
}

// Rewrite renders the query in the connection's dialect.
func (c *Connection) Rewrite(q *query.Query) (string, error) {
	return c.rewriter.Rewrite(q)
}

// ExecuteQuery rewrites and executes the query. Rewriting errors are
// returned as is, backend errors as ExecutionError.
func (c *Connection) ExecuteQuery(ctx context.Context, q *query.Query) (*DataSet, error) {
	sql, err := c.Rewrite(q)
	if err != nil {
		return nil, err
	}

	return c.Execute(ctx, sql)
}

// Execute runs SQL text as is.
func (c *Connection) Execute(ctx context.Context, sql string) (*DataSet, error) {
	stream, err := c.driver.Query(ctx, sql)
	if err != nil {
		return nil, &ExecutionError{Query: sql, Err: err}
	}

	return NewDataSet(stream, sql), nil
}

func (c *Connection) Close() {
	c.driver.Close()
}
