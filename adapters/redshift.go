package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&Redshift{}, "redshift")
}

var _ core.Adapter = (*Redshift)(nil)

type Redshift struct{}

func (r *Redshift) Connect(rawURL string) (core.Driver, error) {
	connURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// redshift speaks the postgres wire protocol
	db, err := sql.Open("postgres", connURL.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to redshift: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping redshift: %w", err)
	}

	return newRedshiftDriver(builders.NewClient(db)), nil
}
