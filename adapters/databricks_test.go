package adapters

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabricks_Connect(t *testing.T) {
	tests := []struct {
		name          string
		connectionURL string
		wantErr       bool
		messageErr    string
	}{
		{
			name:          "should fail with invalid url format",
			connectionURL: "://invalid",
			wantErr:       true,
			messageErr:    "failed to parse connection string",
		},
		{
			name:          "should fail with missing catalog",
			connectionURL: "token:dummytoken@hostname:443/sql/1.0/endpoints/1234567890",
			wantErr:       true,
			messageErr:    "required parameter '?catalog=<catalog>' is missing",
		},
		{
			name:          "should succeed with valid connection",
			connectionURL: "token:dummytoken@hostname:443/sql/1.0/endpoints/1234567890?catalog=my_catalog",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &Databricks{}
			got, err := d.Connect(tt.connectionURL)

			if tt.wantErr {
				assert.NotEqual(t, "", tt.messageErr)
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.messageErr)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, got)
			got.Close()
		})
	}
}

func Test_databricksDriver_Schemas(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)
	driver := newDatabricksDriver(client, "test_catalog")

	r.Contains(driver.schemasQuery, "FROM `test_catalog`.information_schema.tables t")
	r.Contains(driver.schemasQuery, "LEFT JOIN `test_catalog`.information_schema.columns c")

	mock.ExpectQuery(driver.schemasQuery).WillReturnRows(
		sqlmock.NewRows([]string{"table_schema", "table_name", "table_type", "column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("default", "country", "MANAGED", "code", "STRING", "NO", 1).
			AddRow("default", "country", "MANAGED", "name", "STRING", "YES", 2).
			AddRow("default", "country_v", "VIEW", "code", "STRING", "YES", 1),
	)

	schemas, err := driver.Schemas(context.Background())
	r.NoError(err)
	r.NoError(mock.ExpectationsWereMet())

	r.Len(schemas, 1)
	r.Equal("default", schemas[0].Name)
	r.Equal([]string{"country", "country_v"}, schemas[0].TableNames())
}
