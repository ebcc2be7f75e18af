package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/kndndrj/dbquery/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
	Driver  *core.Connection
}

// NewMySQLContainer creates a new MySQL container with
// default adapter and connection. The params.URL is overwritten.
func NewMySQLContainer(ctx context.Context, params *core.ConnectionParams) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("dev"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	driver, err := NewConnection(params, "mysql", connURL)
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
		Driver:         driver,
	}, nil
}

// NewDriver connects to the container again with the given parameters.
func (p *MySQLContainer) NewDriver(params *core.ConnectionParams) (*core.Connection, error) {
	return NewConnection(params, "mysql", p.ConnURL)
}
