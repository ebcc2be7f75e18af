package adapters

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3")
}

var _ core.Adapter = (*SQLite)(nil)

type SQLite struct{}

func (s *SQLite) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite database: %w", err)
	}

	return newSQLiteDriver(builders.NewClient(db)), nil
}
