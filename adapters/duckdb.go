//go:build cgo && ((darwin && (amd64 || arm64)) || (linux && (amd64 || arm64 || riscv64)))

package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&DuckDB{}, "duck", "duckdb")
}

var _ core.Adapter = (*DuckDB)(nil)

type DuckDB struct{}

func (d *DuckDB) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("duckdb", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to duckdb database: %w", err)
	}

	return newDuckDBDriver(builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)), nil
}
