package core

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type ConnectionParams struct {
	ID   ConnectionID
	Name string
	Type string
	URL  string
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	return &ConnectionParams{
		ID:   ConnectionID(expandOrDefault(string(p.ID))),
		Name: expandOrDefault(p.Name),
		Type: expandOrDefault(p.Type),
		URL:  expandOrDefault(p.URL),
	}
}

type connectionParamsPersistent struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

func (p *ConnectionParams) toPersistent() *connectionParamsPersistent {
	return &connectionParamsPersistent{
		ID:   string(p.ID),
		Name: p.Name,
		Type: p.Type,
		URL:  p.URL,
	}
}

func (p *ConnectionParams) fromPersistent(pp *connectionParamsPersistent) {
	p.ID = ConnectionID(pp.ID)
	p.Name = pp.Name
	p.Type = pp.Type
	p.URL = pp.URL
}

func (p *ConnectionParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toPersistent())
}

func (p *ConnectionParams) UnmarshalJSON(data []byte) error {
	var pp connectionParamsPersistent
	if err := json.Unmarshal(data, &pp); err != nil {
		return err
	}
	p.fromPersistent(&pp)
	return nil
}

func (p *ConnectionParams) MarshalYAML() (any, error) {
	return p.toPersistent(), nil
}

func (p *ConnectionParams) UnmarshalYAML(value *yaml.Node) error {
	var pp connectionParamsPersistent
	if err := value.Decode(&pp); err != nil {
		return err
	}
	p.fromPersistent(&pp)
	return nil
}
