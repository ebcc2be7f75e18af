package adapters

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

var mysqlParamPattern = regexp.MustCompile(`[\?][\w]+=[\w-]+`)

func (m *MySQL) Connect(url string) (core.Driver, error) {
	// add multiple statements support parameter
	sep := "?"
	if mysqlParamPattern.MatchString(url) {
		sep = "&"
	}

	db, err := sql.Open("mysql", url+sep+"multiStatements=true")
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	return newMySQLDriver(builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)), nil
}
