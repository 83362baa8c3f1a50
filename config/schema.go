package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the generated schema.
const SchemaID = "https://github.com/grovetools/hookcfg/hookcfg.schema.json"

// GenerateSchema generates the JSON Schema for hook configuration files.
// It reflects the Config struct from types.go.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The hook framework tolerates keys it does not know; strict mode
		// reports them separately.
		AllowAdditionalProperties: true,
		// Inline every nested type instead of using $ref.
		ExpandedStruct: true,
		DoNotReference: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Hook Configuration"
	schema.Description = "Schema for .pre-commit-config.yaml hook source lists."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
