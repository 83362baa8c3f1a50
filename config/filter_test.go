package config

import (
	"testing"

	"github.com/grovetools/hookcfg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterHooks(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testutil.SampleConfig))
	require.NoError(t, err)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name: "no patterns selects everything",
			want: []string{"black", "flake8", "seed-isort-config", "isort", "trailing-whitespace", "end-of-file-fixer", "check-yaml"},
		},
		{
			name:     "glob",
			patterns: []string{"*isort*"},
			want:     []string{"seed-isort-config", "isort"},
		},
		{
			name:     "exact ids",
			patterns: []string{"black", "flake8"},
			want:     []string{"black", "flake8"},
		},
		{
			name:     "exclusion",
			patterns: []string{"*", "!check-*", "!*-fixer"},
			want:     []string{"black", "flake8", "seed-isort-config", "isort", "trailing-whitespace"},
		},
		{
			name:     "no match",
			patterns: []string{"pytest*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := FilterHooks(cfg.Repos, tt.patterns)
			require.NoError(t, err)

			var ids []string
			for _, m := range matches {
				ids = append(ids, m.Hook.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterHooks_KeepsSource(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testutil.SampleConfig))
	require.NoError(t, err)

	matches, err := FilterHooks(cfg.Repos, []string{"check-yaml"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "https://github.com/pre-commit/pre-commit-hooks", matches[0].Source.Repo)
	assert.Equal(t, "v3.3.0", matches[0].Source.Rev)
}

func TestFilterHooks_BadPattern(t *testing.T) {
	_, err := FilterHooks(nil, []string{"["})
	assert.Error(t, err)
}
