package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CarterFendley/pit/internal/pathspec"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var log = logrus.New()

func TestCreateAndOpen(t *testing.T) {
	root := t.TempDir()

	_, err := store.Open(root, log)
	require.ErrorIs(t, err, store.ErrStoreNotFound)

	s, err := store.Create(root, log)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ".pit"), s.Dir())
	require.Equal(t, filepath.Join(root, ".pit", "log.json"), s.LogPath())
	require.Empty(t, s.DB().ReadTx().AllSnapshots())

	logData, err := os.ReadFile(s.LogPath())
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(logData))

	include, err := os.ReadFile(s.IncludePath())
	require.NoError(t, err)
	require.Equal(t,
		"# Pit include files are treated written in the git pathspec syntax\n"+
			"# See more here: https://git-scm.com/docs/gitglossary#Documentation/gitglossary.txt-aiddefpathspecapathspec\n"+
			"*\n",
		string(include),
	)

	_, err = store.Create(root, log)
	require.ErrorIs(t, err, store.ErrStoreExists)

	s, err = store.Open(root, log)
	require.NoError(t, err)
	spec, err := s.IncludeSpec()
	require.NoError(t, err)
	includeMatcher, force := spec.Matchers()
	require.Nil(t, force)
	require.True(t, includeMatcher.Match("anything.txt"))
}

func TestCreateMissingDir(t *testing.T) {
	_, err := store.Create(filepath.Join(t.TempDir(), "missing"), log)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrStoreExists)
}

func TestOpenLoadErrors(t *testing.T) {
	t.Run("missing log", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".pit"), 0755))
		_, err := store.Open(root, log)
		loadErr, ok := errutils.As[*store.LoadError](err)
		require.True(t, ok, "expected a LoadError, got %v", err)
		require.ErrorIs(t, loadErr, os.ErrNotExist)
	})

	t.Run("malformed log", func(t *testing.T) {
		root := t.TempDir()
		s, err := store.Create(root, log)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(s.LogPath(), []byte("not json"), 0644))
		_, err = store.Open(root, log)
		_, ok := errutils.As[*store.LoadError](err)
		require.True(t, ok, "expected a LoadError, got %v", err)
	})

	t.Run("not a directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".pit"), nil, 0644))
		_, err := store.Open(root, log)
		_, ok := errutils.As[*store.LoadError](err)
		require.True(t, ok, "expected a LoadError, got %v", err)
	})

	t.Run("malformed include", func(t *testing.T) {
		root := t.TempDir()
		s, err := store.Create(root, log)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(s.IncludePath(), []byte("# force\n# force\n"), 0644))
		_, err = s.IncludeSpec()
		_, ok := errutils.As[*store.LoadError](err)
		require.True(t, ok, "expected a LoadError, got %v", err)
		require.ErrorIs(t, err, pathspec.ErrMalformedIncludeSpec)
	})
}
