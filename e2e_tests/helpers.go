package e2e_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/git/gittest"
	"github.com/CarterFendley/pit/internal/utils/stringutils"
	"github.com/stretchr/testify/require"
)

// NewInitializedRepo creates a temporary git repository, changes into it and
// runs `pit init`.
func NewInitializedRepo(t *testing.T) *git.Repo {
	t.Helper()
	repo := gittest.NewTempRepo(t)
	Chdir(t, repo.Dir())
	RequirePit(t, "init")
	return repo
}

func RequireStatus(t *testing.T, repo *git.Repo) git.StatusMap {
	t.Helper()
	st, err := repo.Status(context.Background())
	require.NoError(t, err, "failed to query git status")
	return st
}

func WriteInclude(t *testing.T, repo *git.Repo, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(repo.Dir(), ".pit", "include"), []byte(content), 0644)
	require.NoError(t, err, "failed to write include file")
}

func splitLines(s string) []string {
	return stringutils.SplitLines(s)
}
