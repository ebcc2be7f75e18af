package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/dialect"
	"github.com/kndndrj/dbquery/query"
)

// buildQuery resolves the table argument against the session catalog and
// builds the query from the flags.
func buildQuery(cmd *cobra.Command, s *session, tableName string, opts *QueryOptions) (*query.Query, error) {
	schema, table := splitTableName(tableName)

	t, err := s.conn.Table(cmd.Context(), schema, table)
	if err != nil {
		return nil, err
	}

	return opts.build(t)
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}
	var dialectName string

	cmd := &cobra.Command{
		Use:   "rewrite <[schema.]table>",
		Short: "Print the SQL of a query without running it",
		Long: `Print the SQL of a query without running it.

The table is looked up in the catalog of the connection. --dialect renders
the SQL for another database than the connected one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := buildQuery(cmd, s, args[0], opts)
			if err != nil {
				return err
			}

			var sql string
			if dialectName != "" {
				d, err := dialect.Lookup(dialectName)
				if err != nil {
					return err
				}
				sql, err = dialect.NewRewriter(d).Rewrite(q)
				if err != nil {
					return err
				}
			} else {
				sql, err = s.h.ConnectionRewrite(s.connID, q)
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return err
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "render for this dialect instead of the connection's one")

	return cmd
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <[schema.]table>",
		Short: "Run a query and print the rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := buildQuery(cmd, s, args[0], opts)
			if err != nil {
				return err
			}

			res, err := s.h.ConnectionExecuteQuery(cmd.Context(), s.connID, q)
			if err != nil {
				return err
			}

			return storeResult(cmd, s, rootOpts, res)
		},
	}

	opts.register(cmd.Flags())

	return cmd
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>",
		Short: "Run SQL text as is and print the rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.h.ConnectionExecute(cmd.Context(), s.connID, args[0])
			if err != nil {
				return err
			}

			return storeResult(cmd, s, rootOpts, res)
		},
	}
}

// storeResult writes all rows to --output or to the command's output.
func storeResult(cmd *cobra.Command, s *session, rootOpts *RootOptions, res *core.Result) error {
	if rootOpts.Output != "" {
		return s.h.StoreResultToFile(rootOpts.Output, res, rootOpts.Format, 0, -1)
	}
	return s.h.StoreResult(cmd.OutOrStdout(), res, rootOpts.Format, 0, -1)
}
