package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/grovetools/hookcfg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortRepoName(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "HTTPS URL without .git",
			url:      "https://github.com/ambv/black",
			expected: "ambv/black",
		},
		{
			name:     "HTTPS URL with .git",
			url:      "https://gitlab.com/pycqa/flake8.git",
			expected: "pycqa/flake8",
		},
		{
			name:     "SSH URL",
			url:      "git@github.com:pre-commit/pre-commit-hooks.git",
			expected: "pre-commit/pre-commit-hooks",
		},
		{
			name:     "GitLab nested groups",
			url:      "https://gitlab.com/group/subgroup/project.git",
			expected: "subgroup/project",
		},
		{
			name:     "local sentinel",
			url:      "local",
			expected: "local",
		},
		{
			name:     "host only",
			url:      "https://example.com",
			expected: "https://example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShortRepoName(tc.url))
		})
	}
}

func TestGetGitRoot(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmpDir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = tmpDir
	require.NoError(t, cmd.Run())

	subDir := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	ctx := context.Background()
	assert.True(t, IsGitRepo(ctx, subDir))

	root, err := GetGitRoot(ctx, subDir)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetGitRoot_OutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err = GetGitRoot(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.GetCode(err))
	assert.False(t, IsGitRepo(context.Background(), dir))
}
