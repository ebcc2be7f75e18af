package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kndndrj/dbquery/adapters"
	"github.com/kndndrj/dbquery/core"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported database types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, typ := range new(adapters.Mux).Types() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), typ); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewSchemasCommand creates the schemas command.
func NewSchemasCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the schemas of the connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			schemas, err := s.h.ConnectionGetSchemas(cmd.Context(), s.connID)
			if err != nil {
				return err
			}

			def, err := s.conn.DefaultSchema(cmd.Context())
			if err != nil {
				s.log.Warnf("no default schema: %s", err)
			}

			rows := make([]core.Row, len(schemas))
			for i, schema := range schemas {
				rows[i] = core.Row{schema.Name, int64(len(schema.Tables())), def != nil && def.Name == schema.Name}
			}

			return writeRows(cmd.OutOrStdout(), rootOpts, core.Header{"SCHEMA", "TABLES", "DEFAULT"}, rows)
		},
	}
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables [schema]",
		Short: "List the tables of a schema",
		Long:  "List the tables of a schema. Without an argument the default schema of the connection is listed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			schema := ""
			if len(args) > 0 {
				schema = args[0]
			}

			tables, err := s.h.ConnectionGetTables(cmd.Context(), s.connID, schema)
			if err != nil {
				return err
			}

			rows := make([]core.Row, len(tables))
			for i, t := range tables {
				rows[i] = core.Row{t.Name, t.Type.String(), int64(len(t.Columns()))}
			}

			return writeRows(cmd.OutOrStdout(), rootOpts, core.Header{"TABLE", "TYPE", "COLUMNS"}, rows)
		},
	}
}
