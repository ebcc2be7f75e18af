package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/handler"
)

var errNoConnection = errors.New("no connection: pass --type and --url or --config")

// session is a handler with the selected connection.
type session struct {
	h      *handler.Handler
	connID core.ConnectionID
	conn   *core.Connection
	log    handler.Logger
}

func (s *session) Close() {
	s.h.Close()
}

// openSession connects to the ad hoc connection given by --type and --url,
// or to the connections of the config file.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	log := handler.NewLogger(cmd.ErrOrStderr(), opts.Verbose)
	h := handler.New(log)

	params, err := connectionParams(opts)
	if err != nil {
		return nil, err
	}

	for _, p := range params {
		if _, err := h.CreateConnection(p); err != nil {
			h.Close()
			return nil, fmt.Errorf("connection %q: %w", p.ID, err)
		}
	}

	if opts.ConnectionID != "" {
		if err := h.SetCurrentConnection(core.ConnectionID(opts.ConnectionID)); err != nil {
			h.Close()
			return nil, err
		}
	}

	conn, err := h.GetCurrentConnection()
	if err != nil {
		h.Close()
		return nil, err
	}

	return &session{
		h:      h,
		connID: conn.GetID(),
		conn:   conn,
		log:    log,
	}, nil
}

func connectionParams(opts *RootOptions) ([]*core.ConnectionParams, error) {
	if opts.URL != "" || opts.Type != "" {
		if opts.URL == "" || opts.Type == "" {
			return nil, errNoConnection
		}
		return []*core.ConnectionParams{{
			ID:   "adhoc",
			Name: "adhoc",
			Type: opts.Type,
			URL:  opts.URL,
		}}, nil
	}

	if opts.ConfigFile == "" {
		return nil, errNoConnection
	}

	params, err := handler.LoadConnections(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("handler.LoadConnections: %w", err)
	}

	// only the selected connection is opened
	if opts.ConnectionID != "" {
		for _, p := range params {
			if string(p.ID) == opts.ConnectionID {
				return []*core.ConnectionParams{p}, nil
			}
		}
		return nil, fmt.Errorf("connection %q not found in %s", opts.ConnectionID, opts.ConfigFile)
	}

	return params[:1], nil
}

// writeRows formats rows with the formatter selected by --format.
func writeRows(w io.Writer, opts *RootOptions, header core.Header, rows []core.Row) error {
	formatter, err := handler.NewFormatter(opts.Format)
	if err != nil {
		return err
	}

	out, err := formatter.Format(header, rows, &core.FormatterOptions{})
	if err != nil {
		return fmt.Errorf("formatter.Format: %w", err)
	}

	_, err = w.Write(out)
	return err
}

// splitTableName splits "schema.table" into its parts. A name without a dot
// is a table of the default schema.
func splitTableName(name string) (schema, table string) {
	schema, table, ok := strings.Cut(name, ".")
	if !ok {
		return "", name
	}
	return schema, table
}
