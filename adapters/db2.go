package adapters

import (
	"database/sql"
	"fmt"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&DB2{}, "db2", "ibmdb2")
}

var _ core.Adapter = (*DB2)(nil)

// DB2 connects through the database/sql driver registered under
// DriverName. The IBM driver needs the clidriver libraries, so it is not
// linked here; binaries that ship it import it for side effects.
type DB2 struct {
	// DriverName defaults to "go_ibm_db".
	DriverName string
}

func (d *DB2) Connect(url string) (core.Driver, error) {
	name := d.DriverName
	if name == "" {
		name = "go_ibm_db"
	}

	db, err := sql.Open(name, url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to db2 database: %w", err)
	}

	return newDB2Driver(builders.NewClient(db)), nil
}
