package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&Clickhouse{}, "clickhouse")
}

var _ core.Adapter = (*Clickhouse)(nil)

type Clickhouse struct{}

func (p *Clickhouse) Connect(url string) (core.Driver, error) {
	options, err := clickhouse.ParseDSN(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db := clickhouse.OpenDB(options)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging connection failed with %w", err)
	}

	return newClickhouseDriver(builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)), nil
}
