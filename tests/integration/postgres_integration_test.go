package integration

import (
	"context"
	"log"
	"testing"

	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/kndndrj/dbquery/core"
	th "github.com/kndndrj/dbquery/tests/testhelpers"
)

// PostgresTestSuite is the test suite for the postgres adapter.
type PostgresTestSuite struct {
	countrySuite
	ctr *th.PostgresContainer
}

// TestPostgresTestSuite is the entrypoint for go test.
//
// testify/suite can't handle parallel tests, see
// https://github.com/stretchr/testify/issues/934
func TestPostgresTestSuite(t *testing.T) {
	tsuite.Run(t, new(PostgresTestSuite))
}

func (suite *PostgresTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewPostgresContainer(suite.ctx, &core.ConnectionParams{
		ID:   "test-postgres",
		Name: "test-postgres",
	})
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
	suite.d = ctr.Driver
	suite.reconnect = ctr.NewDriver
	suite.defaultSchema = "public"
}

func (suite *PostgresTestSuite) TearDownSuite() {
	suite.d.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}
