package config

import (
	"encoding/json"
	"testing"

	"github.com/grovetools/hookcfg/errors"
	"github.com/grovetools/hookcfg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, SchemaID, doc["$id"])
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Contains(t, doc["required"], "repos")

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok, "schema has no properties")
	for _, key := range []string{"repos", "default_language_version", "fail_fast", "minimum_pre_commit_version"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, string(data), "$ref")
	assert.Contains(t, string(data), "language_version")
}

func TestSchemaValidator_Document(t *testing.T) {
	validator, err := NewSchemaValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		src       string
		wantError bool
		errorMsg  string
	}{
		{
			name: "sample config",
			src:  testutil.SampleConfig,
		},
		{
			name:      "numeric rev",
			src:       "repos:\n  - repo: https://gitlab.com/pycqa/flake8\n    rev: 3.8\n    hooks:\n      - id: flake8\n",
			wantError: true,
			errorMsg:  "/repos/0/rev",
		},
		{
			name:      "non-string args",
			src:       "repos:\n  - repo: https://gitlab.com/pycqa/flake8\n    rev: 3.8.4\n    hooks:\n      - id: flake8\n        args: [88]\n",
			wantError: true,
			errorMsg:  "/repos/0/hooks/0/args/0",
		},
		{
			name:      "hook without id",
			src:       "repos:\n  - repo: https://gitlab.com/pycqa/flake8\n    rev: 3.8.4\n    hooks:\n      - args: [--max-line-length=88]\n",
			wantError: true,
			errorMsg:  "/repos/0/hooks/0",
		},
		{
			name:      "repos is not a list of mappings",
			src:       "repos:\n  - https://github.com/ambv/black\n",
			wantError: true,
			errorMsg:  "/repos/0",
		},
		{
			name:      "empty document",
			src:       "",
			wantError: true,
			errorMsg:  "repos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			require.NoError(t, err)

			err = validator.ValidateDocument(doc)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestCheck_SchemaFailureIsValidationError(t *testing.T) {
	doc, err := Parse([]byte("repos:\n  - repo: https://gitlab.com/pycqa/flake8\n    rev: 3.8\n    hooks:\n      - id: flake8\n"))
	require.NoError(t, err)

	err = doc.Check(ValidateOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}
