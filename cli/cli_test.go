package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/errors"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(verbose bool, err error) string {
	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: verbose, Out: &buf}
	_ = h.Handle(err)
	return buf.String()
}

func TestErrorHandler(t *testing.T) {
	validation := errors.New(errors.ErrCodeConfigValidation, "2 validation issue(s)").
		WithDetail("issues", []config.Issue{
			{Path: "repos[0].rev", Line: 3, Message: "a revision pin is required"},
			{Path: "repos[1].hooks[0].id", Line: 9, Message: "must be a non-empty string"},
		})

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "not found",
			err:  errors.ConfigNotFound("/tmp/x"),
			want: []string{"No .pre-commit-config.yaml found"},
		},
		{
			name: "validation issues",
			err:  validation,
			want: []string{"2 problem(s)", "line 3: repos[0].rev: a revision pin is required", "line 9: repos[1].hooks[0].id"},
		},
		{
			name: "schema failure",
			err:  errors.Wrap(fmt.Errorf("schema validation failed:\n- /repos/0/rev: expected string"), errors.ErrCodeConfigValidation, "schema validation failed"),
			want: []string{"/repos/0/rev"},
		},
		{
			name: "active source missing",
			err:  errors.SourceNotFound("black"),
			want: []string{"No active hook source 'black'"},
		},
		{
			name: "disabled source missing",
			err:  errors.SourceNotFound("black").WithDetail("disabled", true),
			want: []string{"No disabled block contains 'black'", "list --all"},
		},
		{
			name: "ambiguous",
			err:  errors.AmbiguousSource("local", 2),
			want: []string{"'local' matches 2 sources", "--rev"},
		},
		{
			name: "drift",
			err:  errors.FormatDrift("cfg.yaml"),
			want: []string{"cfg.yaml is not formatted", "fmt --write"},
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: []string{"Error: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := handle(false, tt.err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "Error details")
		})
	}
}

func TestErrorHandler_Verbose(t *testing.T) {
	out := handle(true, errors.FormatDrift("cfg.yaml"))
	assert.Contains(t, out, "Error details")
	assert.Contains(t, out, `"code": "FORMAT_DRIFT"`)

	assert.Nil(t, NewErrorHandler(false).Handle(nil))
}

func TestStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("hookcfg", "test")
	sub := &cobra.Command{Use: "sub", RunE: func(cmd *cobra.Command, args []string) error {
		opts := GetOptions(cmd)
		assert.Equal(t, "custom.yaml", opts.ConfigFile)
		assert.True(t, opts.Verbose)
		assert.True(t, opts.JSONOutput)
		return nil
	}}
	cmd.AddCommand(sub)
	cmd.SetArgs([]string{"sub", "-c", "custom.yaml", "-v", "--json"})
	require.NoError(t, cmd.Execute())
}

func TestInitConfig_ExplicitPathWins(t *testing.T) {
	path, err := InitConfig("/some/where.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, "/some/where.yaml", path)
}

func TestStyledHelp(t *testing.T) {
	root := NewStandardCommand("hookcfg", "Inspect hook configuration")
	root.AddCommand(&cobra.Command{Use: "validate", Short: "Check the file", Run: func(*cobra.Command, []string) {}})
	ApplyStyledHelpRecursive(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "HOOKCFG")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "validate")
	assert.Contains(t, out, "Check the file")
	assert.Contains(t, out, "--config")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 20))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 10))
}

func TestColorProfile(t *testing.T) {
	assert.Equal(t, termenv.Ascii, colorProfile(true, true))
	assert.Equal(t, termenv.Ascii, colorProfile(false, false))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"SOURCE", "REV"}, [][]string{{"ambv/black", "20.8b1"}, {"local", "-"}}, func(row int) bool { return row == 1 })
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "ambv/black")
	assert.Contains(t, out, "20.8b1")
	assert.Contains(t, out, "local")
}
