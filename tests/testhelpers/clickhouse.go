package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"github.com/kndndrj/dbquery/core"
)

type ClickHouseContainer struct {
	*clickhouse.ClickHouseContainer
	ConnURL string
	Driver  *core.Connection
}

// NewClickHouseContainer creates a new clickhouse container with
// default adapter and connection. The params.URL is overwritten.
func NewClickHouseContainer(ctx context.Context, params *core.ConnectionParams) (*ClickHouseContainer, error) {
	seedFile, err := GetTestDataFile("clickhouse_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := clickhouse.Run(
		ctx,
		"clickhouse/clickhouse-server:25.1-alpine",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		clickhouse.WithUsername("admin"),
		clickhouse.WithPassword(""),
		clickhouse.WithDatabase("dev"),
		clickhouse.WithInitScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx)
	if err != nil {
		return nil, err
	}

	driver, err := NewConnection(params, "clickhouse", connURL)
	if err != nil {
		return nil, err
	}

	return &ClickHouseContainer{
		ClickHouseContainer: ctr,
		ConnURL:             connURL,
		Driver:              driver,
	}, nil
}

// NewDriver connects to the container again with the given parameters.
func (p *ClickHouseContainer) NewDriver(params *core.ConnectionParams) (*core.Connection, error) {
	return NewConnection(params, "clickhouse", p.ConnURL)
}
