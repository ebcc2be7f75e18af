package adapters

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/databricks/databricks-sql-go"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&Databricks{}, "databricks")
}

var errMissingCatalog = errors.New("required parameter '?catalog=<catalog>' is missing")

var _ core.Adapter = (*Databricks)(nil)

type Databricks struct{}

// Connect parses the connectionURL and returns a new core.Driver
// connectionURL is a DSN structure in the format of:
//
// token:[my_token]@[hostname]:[port]/[endpoint http path]?param=value
//
// requires the 'catalog' parameter to be set.
//
// see https://github.com/databricks/databricks-sql-go for more information.
func (d *Databricks) Connect(connectionURL string) (core.Driver, error) {
	parsedURL, err := url.Parse(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: ", err)
	}

	currentCatalog := parsedURL.Query().Get("catalog")
	if currentCatalog == "" {
		return nil, errMissingCatalog
	}

	// NOTE: we could add a PingContext with timeout here but I'll leave that
	// up to the user to add in the DSN URL (given databricks bootup time).
	db, err := sql.Open("databricks", parsedURL.String())
	if err != nil {
		return nil, fmt.Errorf("invalid databricks connection string: %w", err)
	}

	return newDatabricksDriver(builders.NewClient(db), currentCatalog), nil
}
