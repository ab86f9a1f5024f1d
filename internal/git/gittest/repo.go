package gittest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

// NewTempRepo initializes a new git repository with reasonable defaults and
// a single commit containing README.md.
func NewTempRepo(t *testing.T) *git.Repo {
	t.Helper()
	var dir string
	if os.Getenv("PIT_TEST_PRESERVE_TEMP_REPO") != "" {
		var err error
		dir, err = os.MkdirTemp("", "repo")
		require.NoError(t, err)
		logrus.Infof("created git test repo: %s", dir)
	} else {
		dir = filepath.Join(t.TempDir(), "local")
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	// Resolve symlinks (e.g., /tmp on macOS) so paths match what
	// `git rev-parse --show-toplevel` reports.
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	init := exec.Command("git", "init", "--initial-branch=main")
	init.Dir = dir
	err = init.Run()
	require.NoError(t, err, "failed to initialize git repository")

	repo, err := git.OpenRepo(dir, git.DefaultCommand, logrus.StandardLogger())
	require.NoError(t, err, "failed to open repo")

	ctx := context.Background()
	settings := map[string]string{
		"user.name":      "pit-test",
		"user.email":     "pit-test@nonexistant",
		"commit.gpgsign": "false",
	}
	for k, v := range settings {
		_, err = repo.Git(ctx, "config", k, v)
		require.NoErrorf(t, err, "failed to set config %s=%s", k, v)
	}

	CommitFile(t, repo, "README.md", []byte("# Hello World"))
	return repo
}
