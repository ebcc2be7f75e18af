package dialect

func init() {
	for _, d := range []*Dialect{
		DB2, Postgres, Redshift, MySQL, Oracle, SQLServer, SQLite,
		DuckDB, ClickHouse, Databricks, Derby, H2, HSQLDB, ANSI,
	} {
		_ = Register(d)
	}
}

var numericBooleans = [2]string{"0", "1"}

var (
	DB2 = &Dialect{
		Name:                 "db2",
		Aliases:              []string{"ibmdb2"},
		QuoteOpen:            `"`,
		UpperCaseIdentifiers: true,
		SupportsFetchFirst:   true,
		RowNumberFunction:    "ROW_NUMBER()",
		BooleanLiterals:      numericBooleans,
		TimestampLayout:      "2006-01-02-15.04.05",
	}

	Postgres = &Dialect{
		Name:                 "postgres",
		Aliases:              []string{"postgresql", "pg"},
		QuoteOpen:            `"`,
		LowerCaseIdentifiers: true,
		SupportsLimitOffset:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		DefaultSchemas:       []string{"public"},
	}

	Redshift = &Dialect{
		Name:                 "redshift",
		QuoteOpen:            `"`,
		LowerCaseIdentifiers: true,
		SupportsLimitOffset:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		DefaultSchemas:       []string{"public"},
	}

	MySQL = &Dialect{
		Name:                "mysql",
		Aliases:             []string{"mariadb"},
		QuoteOpen:           "`",
		SupportsLimitOffset: true,
		MaxLimit:            "18446744073709551615",
		RowNumberFunction:   "ROW_NUMBER()",
		BackslashEscapes:    true,
	}

	Oracle = &Dialect{
		Name:                 "oracle",
		QuoteOpen:            `"`,
		UpperCaseIdentifiers: true,
		SupportsFetchFirst:   true,
		SupportsOffsetFetch:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		BooleanLiterals:      numericBooleans,
	}

	SQLServer = &Dialect{
		Name:                       "sqlserver",
		Aliases:                    []string{"mssql"},
		QuoteOpen:                  "[",
		QuoteClose:                 "]",
		SupportsTop:                true,
		SupportsOffsetFetch:        true,
		OffsetFetchRequiresOrderBy: true,
		BooleanLiterals:            numericBooleans,
		DefaultSchemas:             []string{"dbo"},
	}

	SQLite = &Dialect{
		Name:                "sqlite",
		Aliases:             []string{"sqlite3"},
		QuoteOpen:           `"`,
		OmitSchema:          true,
		SupportsLimitOffset: true,
		MaxLimit:            "-1",
		RowNumberFunction:   "ROW_NUMBER()",
		BooleanLiterals:     numericBooleans,
		DefaultSchemas:      []string{"main"},
	}

	DuckDB = &Dialect{
		Name:                "duckdb",
		Aliases:             []string{"duck"},
		QuoteOpen:           `"`,
		SupportsLimitOffset: true,
		RowNumberFunction:   "ROW_NUMBER()",
		DefaultSchemas:      []string{"main"},
	}

	ClickHouse = &Dialect{
		Name:                "clickhouse",
		QuoteOpen:           "`",
		SupportsLimitOffset: true,
		RowNumberFunction:   "ROW_NUMBER()",
		BackslashEscapes:    true,
		DefaultSchemas:      []string{"default"},
	}

	Databricks = &Dialect{
		Name:                "databricks",
		QuoteOpen:           "`",
		SupportsLimitOffset: true,
		RowNumberFunction:   "ROW_NUMBER()",
		BackslashEscapes:    true,
		DefaultSchemas:      []string{"default"},
	}

	Derby = &Dialect{
		Name:                 "derby",
		QuoteOpen:            `"`,
		UpperCaseIdentifiers: true,
		SupportsFetchFirst:   true,
		SupportsOffsetFetch:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		DefaultSchemas:       []string{"APP"},
	}

	H2 = &Dialect{
		Name:                 "h2",
		QuoteOpen:            `"`,
		UpperCaseIdentifiers: true,
		SupportsLimitOffset:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		DefaultSchemas:       []string{"PUBLIC"},
	}

	HSQLDB = &Dialect{
		Name:                 "hsqldb",
		QuoteOpen:            `"`,
		UpperCaseIdentifiers: true,
		SupportsLimitOffset:  true,
		RowNumberFunction:    "ROW_NUMBER()",
		DefaultSchemas:       []string{"PUBLIC"},
	}

	// ANSI is plain SQL:2008 without vendor extensions.
	ANSI = &Dialect{
		Name:                "ansi",
		QuoteOpen:           `"`,
		SupportsFetchFirst:  true,
		SupportsOffsetFetch: true,
	}
)
