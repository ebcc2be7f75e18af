package integration

import (
	"context"

	tsuite "github.com/stretchr/testify/suite"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/query"
	th "github.com/kndndrj/dbquery/tests/testhelpers"
)

// countrySuite runs the same checks against every backend seeded with the
// COUNTRY table from testdata.
type countrySuite struct {
	tsuite.Suite

	ctx context.Context
	// d is the connection under test
	d *core.Connection
	// defaultSchema is the schema COUNTRY is seeded into
	defaultSchema string
	// reconnect opens another connection to the same container
	reconnect func(*core.ConnectionParams) (*core.Connection, error)
}

func (suite *countrySuite) country() *catalog.Table {
	table, err := suite.d.Table(suite.ctx, "", "COUNTRY")
	suite.Require().NoError(err)
	return table
}

func (suite *countrySuite) TestShouldResolveDefaultSchema() {
	schema, err := suite.d.DefaultSchema(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(suite.defaultSchema, schema.Name)

	country, err := schema.TableByName("COUNTRY")
	suite.Require().NoError(err)
	suite.Equal(catalog.TableTypeTable, country.Type)

	suite.Equal([]string{"COUNTRYCODE", "NAME", "POPULATION"}, country.ColumnNames())

	view, err := schema.TableByName("BIG_COUNTRY")
	suite.Require().NoError(err)
	suite.Equal(catalog.TableTypeView, view.Type)
}

func (suite *countrySuite) TestShouldCount() {
	t := suite.T()

	q, err := suite.d.Query().From(suite.country()).SelectCount().ToQuery()
	suite.Require().NoError(err)

	rows, _ := th.Collect(t, suite.d, q)
	suite.Equal([]string{"1008"}, th.Strings(rows, 0))
}

func (suite *countrySuite) TestShouldPaginate() {
	t := suite.T()
	n := th.CountryRows

	tests := []struct {
		name   string
		limit  int
		offset int
	}{
		{name: "second page", limit: 200, offset: 200},
		{name: "first page", limit: 10, offset: 0},
		{name: "last page", limit: 200, offset: 1000},
		{name: "past the end", limit: 10, offset: n},
		{name: "offset only", limit: -1, offset: 1005},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			b := suite.d.Query().
				From(suite.country()).
				Select("COUNTRYCODE").
				OrderBy("POPULATION", query.Ascending)
			if tt.limit >= 0 {
				b.Limit(tt.limit)
			}
			if tt.offset > 0 {
				b.Offset(tt.offset)
			}
			q, err := b.ToQuery()
			suite.Require().NoError(err)

			to := n
			if tt.limit >= 0 {
				to = min(n, tt.offset+tt.limit)
			}

			rows, header := th.Collect(t, suite.d, q)
			suite.Len(header, 1)
			suite.Equal(th.CountryCodes(tt.offset+1, to), nilIfEmpty(th.Strings(rows, 0)))
		})
	}
}

func (suite *countrySuite) TestShouldSelectNulls() {
	t := suite.T()

	q, err := suite.d.Query().
		From(suite.country()).
		Select("COUNTRYCODE", "NAME").
		Where(query.AllOf(query.IsNull("NAME"), query.Lte("POPULATION", 30000))).
		OrderBy("COUNTRYCODE", query.Ascending).
		ToQuery()
	suite.Require().NoError(err)

	rows, _ := th.Collect(t, suite.d, q)
	suite.Equal([]string{"C0010", "C0020", "C0030"}, th.Strings(rows, 0))
	for _, row := range rows {
		suite.Nil(row[1])
	}
}

func (suite *countrySuite) TestShouldAggregate() {
	t := suite.T()

	q, err := suite.d.Query().
		From(suite.country()).
		SelectAggregate(query.FunctionMax, "POPULATION").
		SelectAggregate(query.FunctionMin, "POPULATION").
		ToQuery()
	suite.Require().NoError(err)

	rows, _ := th.Collect(t, suite.d, q)
	suite.Require().Len(rows, 1)
	suite.Equal("1008000", th.Strings(rows, 0)[0])
	suite.Equal("1000", th.Strings(rows, 1)[0])
}

func (suite *countrySuite) TestShouldErrorInvalidQuery() {
	ds, err := suite.d.Execute(suite.ctx, "SELECT FROM WHERE")
	if err == nil {
		for ds.Next() {
		}
		err = ds.Err()
	}

	suite.ErrorIs(err, core.ErrExecution)
}

func (suite *countrySuite) TestShouldErrorCanceledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	ds, err := suite.d.Execute(ctx, "SELECT 1")
	if err == nil {
		for ds.Next() {
		}
		err = ds.Err()
	}

	suite.Error(err)
}

func (suite *countrySuite) TestShouldKeepCatalogPerConnection() {
	d, err := suite.reconnect(&core.ConnectionParams{ID: "again", Name: "again"})
	suite.Require().NoError(err)
	defer d.Close()

	suite.Equal(core.ConnectionID("again"), d.GetID())

	table, err := d.Table(suite.ctx, suite.defaultSchema, "COUNTRY")
	suite.Require().NoError(err)
	suite.NotSame(suite.country(), table)

	q, err := d.Query().From(table).Select("NAME").Limit(1).ToQuery()
	suite.Require().NoError(err)

	rows, _ := th.Collect(suite.T(), d, q)
	suite.Len(rows, 1)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
