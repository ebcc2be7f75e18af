// Package cli implements the dbquery command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile   string
	ConnectionID string
	Type         string
	URL          string
	EnvFile      string
	Format       string // "table" | "json" | "csv"
	Output       string
	Verbose      bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"table", "json", "csv"}

// NewRootCommand creates the root command of the dbquery CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dbquery",
		Short: "Query any SQL database with one query model",
		Long: `dbquery builds a single logical query (table, columns, aggregates, filters,
ordering, limit and offset) and rewrites it into the SQL dialect of the
connected database, including pagination on databases without LIMIT/OFFSET.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			if opts.EnvFile != "" {
				if err := godotenv.Load(opts.EnvFile); err != nil {
					return fmt.Errorf("godotenv.Load: %w", err)
				}
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "connections file (yaml or json)")
	flags.StringVar(&opts.ConnectionID, "connection", "", "id of the connection from the config file to use")
	flags.StringVarP(&opts.Type, "type", "t", "", "database type of an ad hoc connection")
	flags.StringVarP(&opts.URL, "url", "u", "", "url of an ad hoc connection")
	flags.StringVar(&opts.EnvFile, "env-file", "", "load environment variables from a .env file")
	flags.StringVarP(&opts.Format, "format", "f", "table", "output format (table|json|csv)")
	flags.StringVar(&opts.Output, "output", "", "write query results to this file instead of stdout")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewTypesCommand())
	cmd.AddCommand(NewSchemasCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewRewriteCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}
