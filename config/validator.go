package config

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/hookcfg/schema"
)

// SchemaValidator validates raw configuration data against the schema
// generated from the configuration types.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator generates the schema and compiles it.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	validator, err := schema.NewValidator(SchemaID, data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}

// ValidateDocument validates the document as written, before any decoding
// into typed structs could coerce values.
func (v *SchemaValidator) ValidateDocument(d *Document) error {
	if d.root.Kind == 0 || len(d.root.Content) == 0 {
		return v.validator.Validate(map[string]interface{}{})
	}

	var raw interface{}
	if err := d.root.Content[0].Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode document for validation: %w", err)
	}
	// Round-trip through JSON so YAML-specific scalars (timestamps, ints)
	// become the plain JSON values the schema describes.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("document cannot be represented as JSON: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}
	return v.validator.Validate(generic)
}
