package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type configFile struct {
	Fields []Definition `json:"fields"`
}

// Load reads a field configuration file. A missing file yields an empty set,
// since a fresh session has no fields yet. The file is validated against the
// config schema, and loaded definitions are checked for key uniqueness and
// known types; violations are rejected rather than silently kept.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("reading field config: %w", err)
	}

	if err := validateConfig(data); err != nil {
		return nil, fmt.Errorf("field config %s: %w", path, err)
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing field config %s: %w", path, err)
	}

	set := NewSet()
	for _, def := range cfg.Fields {
		if err := set.Add(def.Key, def.Type); err != nil {
			return nil, fmt.Errorf("field config %s: %w", path, err)
		}
	}
	return set, nil
}

// configSchema describes the persisted field configuration shape.
func configSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"fields"},
		"properties": map[string]any{
			"fields": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"fieldKey", "fieldType"},
					"properties": map[string]any{
						"fieldKey":    map[string]any{"type": "string", "minLength": 1},
						"fieldType":   map[string]any{"type": "string"},
						"fieldFormat": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func validateConfig(data []byte) error {
	b, err := json.Marshal(configSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// Save writes the field configuration, overwriting any previous file.
func (s *Set) Save(path string) error {
	defs := s.defs
	if defs == nil {
		defs = []Definition{}
	}
	data, err := json.MarshalIndent(configFile{Fields: defs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding field config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing field config: %w", err)
	}
	return nil
}
