package handler

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kndndrj/dbquery/core"
)

var ErrNoConnections = errors.New("no connections configured")

// connectionsFile is the on-disk layout of the connections file. JSON files
// are read through the same decoder, as JSON is valid YAML.
type connectionsFile struct {
	Connections []*core.ConnectionParams `yaml:"connections"`
}

// LoadConnections reads connection parameters from a YAML or JSON file.
// Template expressions in the values are kept as they are, they get
// expanded when a connection is created.
func LoadConnections(path string) ([]*core.ConnectionParams, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var file connectionsFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if len(file.Connections) < 1 {
		return nil, ErrNoConnections
	}

	return file.Connections, nil
}

// StoreConnections writes the parameters of all connections of the handler
// to a YAML file. Unexpanded values are stored, so secrets referenced by
// templates stay out of the file.
func (h *Handler) StoreConnections(path string) error {
	conns := h.GetConnections(nil)

	file := connectionsFile{
		Connections: make([]*core.ConnectionParams, len(conns)),
	}
	for i, c := range conns {
		file.Connections[i] = c.GetParams()
	}

	b, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}
