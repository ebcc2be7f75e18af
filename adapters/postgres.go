package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	_ "github.com/lib/pq"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

func (p *Postgres) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w: ", err)
	}

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	return newPostgresDriver(builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
		builders.WithCustomTypeProcessor("jsonb", jsonProcessor),
		builders.WithStringTypes("uuid", "numeric", "xml"),
	)), nil
}
