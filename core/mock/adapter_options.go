package mock

import (
	"context"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/dialect"
)

type adapterConfig struct {
	querySideEffects map[string]func(context.Context) error
	queryResults     map[string][]core.Row
	schemas          []*catalog.Schema
	schemasErr       error
	principal        string
	dialect          *dialect.Dialect

	resultStreamOptions []ResultStreamOption
}

type AdapterOption func(*adapterConfig)

func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

// AdapterWithQueryResult returns rows for an exact SQL text instead of the
// adapter's default data.
func AdapterWithQueryResult(query string, rows []core.Row) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.queryResults[query]
		if ok {
			panic("result already registered for query: " + query)
		}

		c.queryResults[query] = rows
	}
}

func AdapterWithSchemas(schemas ...*catalog.Schema) AdapterOption {
	return func(c *adapterConfig) {
		c.schemas = append(c.schemas, schemas...)
	}
}

// AdapterWithSchemasError makes catalog introspection fail.
func AdapterWithSchemasError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.schemasErr = err
	}
}

func AdapterWithPrincipal(principal string) AdapterOption {
	return func(c *adapterConfig) {
		c.principal = principal
	}
}

func AdapterWithDialect(d *dialect.Dialect) AdapterOption {
	return func(c *adapterConfig) {
		c.dialect = d
	}
}

func AdapterWithResultStreamOpts(opts ...ResultStreamOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultStreamOptions = append(c.resultStreamOptions, opts...)
	}
}
