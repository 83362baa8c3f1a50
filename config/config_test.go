package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/hookcfg/errors"
	"github.com/grovetools/hookcfg/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), testutil.SampleConfig)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Repos, 5)
	assert.Equal(t, 7, cfg.HookCount())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, DefaultConfigName))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))

	path := testutil.WriteConfig(t, dir, "repos: [\n")
	_, err = Load(path)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
	groveErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, path, groveErr.Details["path"])

	testutil.WriteConfig(t, dir, "repos:\n  - repo: https://github.com/ambv/black\n    hooks:\n      - id: black\n")
	_, err = Load(path)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigValidation))
	assert.Len(t, IssuesOf(err), 1)
}

func TestLoadDocumentWithLogger(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), testutil.SampleConfig)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	doc, err := LoadDocumentWithLogger(path, ValidateOptions{Strict: true}, logger)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, 5, last.Data["sources"])
	assert.Equal(t, 1, last.Data["disabled"])
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(blackOnly))
	require.NoError(t, err)
	require.Len(t, cfg.Repos, 1)
	assert.Equal(t, "python3", cfg.Repos[0].Hooks[0].LanguageVersion)

	_, err = LoadFromBytes([]byte("repos:\n  - repo: meta\n    rev: v1\n    hooks:\n      - id: identity\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigValidation))
}

func TestWriteDocument_KeepsMode(t *testing.T) {
	path := testutil.WriteConfig(t, t.TempDir(), testutil.SampleConfig)
	require.NoError(t, os.Chmod(path, 0600))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	disabled, err := doc.Disable("https://github.com/ambv/black", "")
	require.NoError(t, err)
	require.NoError(t, WriteDocument(disabled))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.Equal(t, string(disabled.Bytes()), testutil.ReadFile(t, path))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Run("walks up from nested directory", func(t *testing.T) {
		want := testutil.WriteConfig(t, root, testutil.SampleConfig)
		defer os.Remove(want)

		got, err := FindConfigFile(nested, "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("accepts the yml extension", func(t *testing.T) {
		want := filepath.Join(root, "src", ".pre-commit-config.yml")
		require.NoError(t, os.WriteFile(want, []byte(blackOnly), 0644))
		defer os.Remove(want)

		got, err := FindConfigFile(nested, DefaultConfigName)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("custom name", func(t *testing.T) {
		want := filepath.Join(nested, "hooks.yaml")
		require.NoError(t, os.WriteFile(want, []byte(blackOnly), 0644))
		defer os.Remove(want)

		got, err := FindConfigFile(nested, "hooks.yaml")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindConfigFile(nested, "hooks-missing.yaml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
	})
}

func TestFindConfigFile_GitRootThroughSymlink(t *testing.T) {
	testutil.RequireGit(t)

	repo, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	testutil.InitGitRepo(t, repo)
	want := testutil.WriteConfig(t, repo, testutil.SampleConfig)

	sub := filepath.Join(repo, "src")
	require.NoError(t, os.MkdirAll(sub, 0755))
	link := filepath.Join(t.TempDir(), "checkout")
	require.NoError(t, os.Symlink(sub, link))

	got, err := FindConfigFile(link, "")
	require.NoError(t, err)
	got, err = filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
