package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kndndrj/dbquery/core"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
	Driver  *core.Connection
}

// NewPostgresContainer creates a new postgres container with
// default adapter and connection. The params.URL is overwritten.
func NewPostgresContainer(ctx context.Context, params *core.ConnectionParams) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase("dev"),
	)
	if err != nil {
		return nil, err
	}
	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	driver, err := NewConnection(params, "postgres", connURL)
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
		Driver:            driver,
	}, nil
}

// NewDriver connects to the container again with the given parameters.
func (p *PostgresContainer) NewDriver(params *core.ConnectionParams) (*core.Connection, error) {
	return NewConnection(params, "postgres", p.ConnURL)
}
