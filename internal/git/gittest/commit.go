package gittest

import (
	"context"
	"fmt"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/stretchr/testify/require"
)

func CommitFile(t *testing.T, repo *git.Repo, filename string, body []byte) {
	t.Helper()
	fp := CreateFile(t, repo, filename, body)
	AddFile(t, repo, fp)

	msg := fmt.Sprintf("write file %s", filename)
	_, err := repo.Git(context.Background(), "commit", "-m", msg)
	require.NoError(t, err, "failed to commit file: %s", filename)
}

// CommitAll stages and commits everything in the working tree.
func CommitAll(t *testing.T, repo *git.Repo, msg string) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.Git(ctx, "add", "-A")
	require.NoError(t, err, "failed to stage changes")
	_, err = repo.Git(ctx, "commit", "-m", msg)
	require.NoError(t, err, "failed to commit changes")
}
