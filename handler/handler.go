package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/kndndrj/dbquery/adapters"
	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/format"
	"github.com/kndndrj/dbquery/query"
)

var ErrNoCurrentConnection = errors.New("current connection has not been set yet")

// Handler keeps track of open connections and runs queries on them.
type Handler struct {
	log Logger

	mu                  sync.Mutex
	lookupConnection    map[core.ConnectionID]*core.Connection
	connectionOrder     []core.ConnectionID
	currentConnectionID core.ConnectionID
	lookupCalls         map[core.ConnectionID][]*core.Call
}

func New(logger Logger) *Handler {
	return &Handler{
		log:              logger,
		lookupConnection: make(map[core.ConnectionID]*core.Connection),
		lookupCalls:      make(map[core.ConnectionID][]*core.Call),
	}
}

func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range h.connectionOrder {
		h.lookupConnection[id].Close()
	}
	h.lookupConnection = make(map[core.ConnectionID]*core.Connection)
	h.lookupCalls = make(map[core.ConnectionID][]*core.Call)
	h.connectionOrder = nil
	h.currentConnectionID = ""
}

func (h *Handler) CreateConnection(params *core.ConnectionParams) (core.ConnectionID, error) {
	c, err := adapters.NewConnection(params)
	if err != nil {
		return "", fmt.Errorf("adapters.NewConnection: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id := c.GetID()
	old, ok := h.lookupConnection[id]
	if ok {
		old.Close()
	} else {
		h.connectionOrder = append(h.connectionOrder, id)
	}
	h.lookupConnection[id] = c

	h.log.Debugf("created connection %q (%s)", id, c.GetType())

	if h.currentConnectionID == "" {
		h.currentConnectionID = id
	}

	return id, nil
}

// GetConnections returns connections in creation order. An empty ids list
// returns all of them.
func (h *Handler) GetConnections(ids []core.ConnectionID) []*core.Connection {
	h.mu.Lock()
	defer h.mu.Unlock()

	var conns []*core.Connection
	for _, id := range h.connectionOrder {
		if len(ids) > 0 && !slices.Contains(ids, id) {
			continue
		}
		conns = append(conns, h.lookupConnection[id])
	}

	return conns
}

func (h *Handler) GetCurrentConnection() (*core.Connection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.lookupConnection[h.currentConnectionID]
	if !ok {
		return nil, ErrNoCurrentConnection
	}
	return c, nil
}

func (h *Handler) SetCurrentConnection(connID core.ConnectionID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.lookupConnection[connID]
	if !ok {
		return fmt.Errorf("unknown connection with id: %q", connID)
	}

	if h.currentConnectionID != connID {
		h.log.Debugf("current connection changed to %q", connID)
		h.currentConnectionID = connID
	}

	return nil
}

func (h *Handler) connection(connID core.ConnectionID) (*core.Connection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.lookupConnection[connID]
	if !ok {
		return nil, fmt.Errorf("unknown connection with id: %q", connID)
	}
	return c, nil
}

func (h *Handler) ConnectionGetParams(connID core.ConnectionID) (*core.ConnectionParams, error) {
	c, err := h.connection(connID)
	if err != nil {
		return nil, err
	}

	return c.GetParams(), nil
}

func (h *Handler) ConnectionGetSchemas(ctx context.Context, connID core.ConnectionID) ([]*catalog.Schema, error) {
	c, err := h.connection(connID)
	if err != nil {
		return nil, err
	}

	cat, err := c.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Catalog: %w", err)
	}

	return cat.Schemas(), nil
}

// ConnectionGetTables lists the tables of a schema. An empty schema name
// means the default schema of the connection.
func (h *Handler) ConnectionGetTables(ctx context.Context, connID core.ConnectionID, schema string) ([]*catalog.Table, error) {
	c, err := h.connection(connID)
	if err != nil {
		return nil, err
	}

	var s *catalog.Schema
	if schema == "" {
		s, err = c.DefaultSchema(ctx)
	} else {
		var cat *catalog.Catalog
		cat, err = c.Catalog(ctx)
		if err == nil {
			s, err = cat.SchemaByName(schema)
		}
	}
	if err != nil {
		return nil, err
	}

	return s.Tables(), nil
}

func (h *Handler) ConnectionRewrite(connID core.ConnectionID, q *query.Query) (string, error) {
	c, err := h.connection(connID)
	if err != nil {
		return "", err
	}

	return c.Rewrite(q)
}

// ConnectionExecuteQuery rewrites the query for the connection's dialect,
// runs it and collects the rows.
func (h *Handler) ConnectionExecuteQuery(ctx context.Context, connID core.ConnectionID, q *query.Query) (*core.Result, error) {
	c, err := h.connection(connID)
	if err != nil {
		return nil, err
	}

	sql, err := c.Rewrite(q)
	if err != nil {
		return nil, err
	}

	return h.execute(ctx, c, sql)
}

// ConnectionExecute runs SQL text as is and collects the rows.
func (h *Handler) ConnectionExecute(ctx context.Context, connID core.ConnectionID, sql string) (*core.Result, error) {
	c, err := h.connection(connID)
	if err != nil {
		return nil, err
	}

	return h.execute(ctx, c, sql)
}

func (h *Handler) execute(ctx context.Context, c *core.Connection, sql string) (*core.Result, error) {
	id := c.GetID()
	h.log.Debugf("executing on %q: %s", id, sql)

	call, res, err := c.ExecuteCall(ctx, sql, func(state core.CallState, call *core.Call) {
		h.log.Debugf("call %q changed state to %q", call.GetID(), state)
	})

	h.mu.Lock()
	h.lookupCalls[id] = append(h.lookupCalls[id], call)
	h.mu.Unlock()

	if err != nil {
		h.log.Errorf("call %q %s after %s: %s", call.GetID(), call.GetState(), call.GetTimeTaken(), err)
		return nil, err
	}

	h.log.Debugf("query returned %d rows in %s", call.GetRows(), call.GetTimeTaken())

	return res, nil
}

// ConnectionGetCalls returns the calls executed on the connection, oldest
// first.
func (h *Handler) ConnectionGetCalls(connID core.ConnectionID) ([]*core.Call, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.lookupConnection[connID]; !ok {
		return nil, fmt.Errorf("unknown connection with id: %q", connID)
	}

	return slices.Clone(h.lookupCalls[connID]), nil
}

// NewFormatter returns the formatter registered under name: table, json or
// csv.
func NewFormatter(name string) (core.Formatter, error) {
	switch name {
	case "json":
		return format.NewJSON(), nil
	case "csv":
		return format.NewCSV(), nil
	case "table", "":
		return format.NewTable(), nil
	default:
		return nil, fmt.Errorf("store output: %q is not supported", name)
	}
}

// StoreResult formats the rows of the result in range and writes them out.
func (h *Handler) StoreResult(w io.Writer, res *core.Result, fmat string, from, to int) error {
	formatter, err := NewFormatter(fmat)
	if err != nil {
		return err
	}

	text, err := res.Format(formatter, from, to)
	if err != nil {
		return fmt.Errorf("res.Format: %w", err)
	}

	_, err = w.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

// StoreResultToFile writes the formatted rows of the result to a file,
// replacing its contents.
func (h *Handler) StoreResultToFile(fileName string, res *core.Result, fmat string, from, to int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	err = h.StoreResult(file, res, fmat, from, to)
	if err != nil {
		return fmt.Errorf("failed to save results as %s: %w", fmat, err)
	}

	h.log.Infof("successfully saved %s to %s", fmat, fileName)
	return nil
}
