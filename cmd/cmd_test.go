package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/hookcfg/errors"
	"github.com/grovetools/hookcfg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blackRepo = "https://github.com/ambv/black"

// setup isolates settings lookup and writes the sample configuration.
func setup(t *testing.T, content string) (string, string) {
	t.Helper()
	t.Setenv("HOOKCFG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	return dir, testutil.WriteConfig(t, dir, content)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	out, err := run(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "5 source(s), 7 hook(s), 1 disabled block(s)")

	out, err = run(t, "validate", "--config", path, "--json")
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 5, result.Sources)
	assert.Equal(t, 7, result.Hooks)
	assert.Equal(t, 1, result.Disabled)
}

func TestValidateCmd_Invalid(t *testing.T) {
	_, path := setup(t, `repos:
  - repo: https://github.com/ambv/black
    hooks:
      - id: black
  - repo: https://github.com/ambv/black
    hooks:
      - id: ""
`)

	_, err := run(t, "validate", "--config", path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidateCmd_StrictFromSettings(t *testing.T) {
	dir, _ := setup(t, testutil.SampleConfig+"ci:\n  autoupdate_schedule: weekly\n")
	testutil.Chdir(t, dir)

	_, err := run(t, "validate")
	require.NoError(t, err)

	_, err = run(t, "validate", "--strict")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hookcfg.toml"), []byte("strict = true\n"), 0644))
	_, err = run(t, "validate")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidateCmd_NoConfig(t *testing.T) {
	setup(t, testutil.SampleConfig)
	_, err := run(t, "validate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestFmtCmd(t *testing.T) {
	_, path := setup(t, "repos:\n-   repo: https://github.com/ambv/black\n    rev: 20.8b1\n    hooks:\n    -   id: black\n")

	_, err := run(t, "fmt", "--config", path, "--check")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFormatDrift, errors.GetCode(err))

	formatted, err := run(t, "fmt", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, formatted, "id: black")

	out, err := run(t, "fmt", "--config", path, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Formatted")
	assert.Equal(t, formatted, testutil.ReadFile(t, path))

	out, err = run(t, "fmt", "--config", path, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "already formatted")

	_, err = run(t, "fmt", "--config", path, "--check")
	assert.NoError(t, err)
}

func TestFmtCmd_Diff(t *testing.T) {
	_, path := setup(t, "repos:\n-   repo: local\n    hooks:\n    -   id: x\n        name: x\n        entry: x\n        language: system\n")

	out, err := run(t, "fmt", "--config", path, "--diff", "--check")
	require.Error(t, err)
	assert.Contains(t, out, "--- "+path)
	assert.Contains(t, out, "+++ "+path+" (formatted)")
	assert.Contains(t, out, "--   repo: local")
}

func TestFmtCmd_CheckAndWriteExclusive(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)
	_, err := run(t, "fmt", "--config", path, "--check", "--write")
	assert.Error(t, err)
}

func TestFmtCmd_IndentOutOfRange(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)
	_, err := run(t, "fmt", "--config", path, "--indent", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestListCmd(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	out, err := run(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ambv/black")
	assert.Contains(t, out, "trailing-whitespace, end-of-file-fixer, check-yaml")
	assert.NotContains(t, out, "pytest-check")

	out, err = run(t, "list", "--config", path, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "pytest-check")
	assert.Contains(t, out, "disabled")
}

func TestListCmd_JSONMatch(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	out, err := run(t, "list", "--config", path, "--json", "--match", "*isort*")
	require.NoError(t, err)

	var listings []SourceListing
	require.NoError(t, json.Unmarshal([]byte(out), &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, []string{"seed-isort-config"}, listings[0].Hooks)
	assert.Equal(t, 13, listings[0].Line)
	assert.Equal(t, "https://github.com/pre-commit/mirrors-isort", listings[1].Repo)

	out, err = run(t, "list", "--config", path, "--json", "--all", "--match", "pytest-*")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &listings))
	require.Len(t, listings, 1)
	assert.True(t, listings[0].Disabled)
	assert.Equal(t, 27, listings[0].Line)
}

func TestDisableEnableCmd(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	out, err := run(t, "disable", "black", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Disabled ambv/black")
	assert.Contains(t, testutil.ReadFile(t, path), "  # - repo: "+blackRepo)

	out, err = run(t, "list", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "ambv/black")

	_, err = run(t, "validate", "--config", path)
	require.NoError(t, err)

	out, err = run(t, "enable", "ambv/black", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Enabled ambv/black")
	assert.Equal(t, testutil.SampleConfig, testutil.ReadFile(t, path))
}

func TestDisableCmd_DryRun(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	out, err := run(t, "disable", blackRepo, "--rev", "20.8b1", "--dry-run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "  # - repo: "+blackRepo)
	assert.Equal(t, testutil.SampleConfig, testutil.ReadFile(t, path))
}

func TestEnableCmd_LocalBlock(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	_, err := run(t, "enable", "local", "--config", path)
	require.NoError(t, err)

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "\n  - repo: local\n    hooks:\n      - id: pytest-check\n")

	out, err := run(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "6 source(s), 8 hook(s)")
}

func TestToggleCmd_Errors(t *testing.T) {
	_, path := setup(t, testutil.SampleConfig)

	_, err := run(t, "disable", "https://example.com/nope", "--config", path)
	assert.Equal(t, errors.ErrCodeSourceNotFound, errors.GetCode(err))

	_, err = run(t, "enable", "black", "--config", path)
	assert.Equal(t, errors.ErrCodeSourceNotFound, errors.GetCode(err))

	_, err = run(t, "disable", "--config", path)
	assert.Error(t, err)
}

func TestSchemaCmd(t *testing.T) {
	setup(t, testutil.SampleConfig)

	out, err := run(t, "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, schema, "properties")
}

func TestVersionCmd(t *testing.T) {
	setup(t, testutil.SampleConfig)

	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"version"`))
}

func TestResolveRepo(t *testing.T) {
	repos := []string{
		blackRepo,
		"https://github.com/pre-commit/mirrors-isort",
		"https://github.com/asottile/seed-isort-config",
		"local",
	}

	tests := []struct {
		arg  string
		want string
	}{
		{arg: blackRepo, want: blackRepo},
		{arg: "black", want: blackRepo},
		{arg: "ambv/black", want: blackRepo},
		{arg: "mirrors-isort", want: "https://github.com/pre-commit/mirrors-isort"},
		{arg: "isort", want: "isort"},
		{arg: "local", want: "local"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRepo(tt.arg, repos))
		})
	}

	// Ambiguous short names are passed through unchanged.
	assert.Equal(t, "black", resolveRepo("black", []string{blackRepo, "https://github.com/psf/black"}))
}
