package builders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
)

var ErrNoRows = errors.New("query returned no rows")

// default sql client used by other specific implementations
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:           conn,
		typeProcessors: c.typeProcessors,
	}, nil
}

// Query executes a query on a dedicated connection. The connection is
// returned to the pool when the stream is closed.
func (c *Client) Query(ctx context.Context, query string) (*ResultStream, error) {
	conn, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}

	rows, err := conn.query(ctx, query, func() { _ = conn.Close() })
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return rows, nil
}

// Exec executes a statement and returns a stream with a single row (number of
// affected rows).
func (c *Client) Exec(ctx context.Context, query string) (*ResultStream, error) {
	conn, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}
	defer conn.Close()

	return conn.Exec(ctx, query)
}

// QueryString returns the first column of the first row as a string.
func (c *Client) QueryString(ctx context.Context, query string) (string, error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.HasNext() {
		return "", ErrNoRows
	}

	row, err := rows.Next()
	if err != nil {
		return "", fmt.Errorf("rows.Next: %w", err)
	}
	if len(row) < 1 {
		return "", ErrNoRows
	}

	switch v := row[0].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// SchemasFromQuery executes a given introspection query and converts the
// results to schemas. See SchemasFromResultStream for the expected layout.
//
// Query is sprintf-ed with args, so SchemasFromQuery(ctx, "... WHERE owner = '%s'", nil, "APP") works.
func (c *Client) SchemasFromQuery(ctx context.Context, query string, tableType func(string) catalog.TableType, args ...any) ([]*catalog.Schema, error) {
	if len(args) > 0 {
		query = fmt.Sprintf(query, args...)
	}

	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return SchemasFromResultStream(rows, tableType)
}

func (c *Client) Close() {
	_ = c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn           *sql.Conn
	typeProcessors map[string]func(any) any
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// Exec executes a query and returns a stream with single row (number of affected results).
func (c *Conn) Exec(ctx context.Context, query string) (*ResultStream, error) {
	res, err := c.conn.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(NextSingle(affected)).
		WithHeader(core.Header{"Rows Affected"}).
		WithMeta(&core.Meta{Query: query}).
		Build()

	return rows, nil
}

func (c *Conn) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		return normalizeValue(typ, val)
	}
}

// Query executes a query on a connection and returns a result stream.
func (c *Conn) Query(ctx context.Context, query string) (*ResultStream, error) {
	return c.query(ctx, query, nil)
}

func (c *Conn) query(ctx context.Context, query string, onClose func()) (*ResultStream, error) {
	dbRows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	processors := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		processors[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	// error reported by the driver after the last row, handed out by the
	// next call to nextFunc
	var pending error

	hasNextFunc := func() bool {
		if dbRows.Next() {
			return true
		}
		if err := dbRows.Err(); err != nil {
			pending = err
			return true
		}
		return false
	}

	nextFunc := func() (core.Row, error) {
		if pending != nil {
			err := pending
			pending = nil
			return nil, err
		}

		columns := make([]any, len(processors))
		columnPointers := make([]any, len(processors))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(processors))
		for i, proc := range processors {
			row[i] = proc(columns[i])
		}

		return row, nil
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithHeader(header).
		WithMeta(&core.Meta{Query: query}).
		WithCloseFunc(func() {
			_ = dbRows.Close()
			if onClose != nil {
				onClose()
			}
		}).
		Build()

	return rows, nil
}
