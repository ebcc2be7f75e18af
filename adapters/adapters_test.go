package adapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbquery/adapters"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/mock"
	"github.com/kndndrj/dbquery/dialect"
)

func TestMux_GetAdapter(t *testing.T) {
	mux := new(adapters.Mux)

	for _, typ := range []string{"db2", "ibmdb2", "postgres", "pg", "redshift", "mysql", "oracle", "sqlserver", "mssql", "sqlite", "clickhouse", "databricks"} {
		t.Run(typ, func(t *testing.T) {
			adapter, err := mux.GetAdapter(typ)
			assert.NoError(t, err)
			assert.NotNil(t, adapter)
		})
	}

	_, err := mux.GetAdapter("arangodb")
	assert.ErrorIs(t, err, adapters.ErrUnsupportedTypeAlias)

	assert.Contains(t, mux.Types(), "db2")
	assert.IsIncreasing(t, mux.Types())
}

func TestMux_AddAdapter(t *testing.T) {
	r := require.New(t)
	mux := new(adapters.Mux)

	adapter := mock.NewAdapter(mock.NewRows(0, 3), mock.AdapterWithDialect(dialect.DB2))
	r.NoError(mux.AddAdapter("mock-db2", adapter))
	r.Error(mux.AddAdapter("", adapter))

	conn, err := adapters.NewConnection(&core.ConnectionParams{Name: "mocked", Type: "mock-db2", URL: "mock://"})
	r.NoError(err)
	defer conn.Close()

	r.Equal("mocked", conn.GetName())
	r.Same(dialect.DB2, conn.Dialect())

	ds, err := conn.Execute(context.Background(), "SELECT 1 FROM SYSIBM.SYSDUMMY1")
	r.NoError(err)
	defer ds.Close()

	n := 0
	for ds.Next() {
		n++
	}
	r.Equal(3, n)

	_, err = adapters.NewConnection(&core.ConnectionParams{Type: "nope"})
	r.ErrorIs(err, adapters.ErrUnsupportedTypeAlias)
}
