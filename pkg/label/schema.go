package label

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// labelDocumentSchema describes the persisted label file shape. Existing
// label files are validated against it before their values are trusted as
// prefills.
func labelDocumentSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"labels"},
		"properties": map[string]any{
			"$schema": map[string]any{"type": "string"},
			"fields": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "object",
					"required": []any{"fieldType"},
					"properties": map[string]any{
						"fieldType": map[string]any{"type": "string"},
					},
				},
			},
			"labels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"label", "value"},
					"properties": map[string]any{
						"label": map[string]any{"type": "string", "minLength": 1},
						"value": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []any{"text"},
								"properties": map[string]any{
									"text":    map[string]any{"type": "string"},
									"page":    map[string]any{"type": "integer", "minimum": 1},
									"polygon": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
								},
							},
						},
					},
				},
			},
		},
	}
}

// validateAgainstSchema validates raw JSON data against a schema expressed as
// a generic map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
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
