package git_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/git/gittest"
	"github.com/stretchr/testify/require"
)

func TestStashPushPopAndRef(t *testing.T) {
	ctx := context.Background()
	repo := gittest.NewTempRepo(t)
	gittest.CommitFile(t, repo, "README.md", []byte("hello"))
	gittest.CreateFile(t, repo, "keep me.txt", []byte("keep"))
	gittest.CreateFile(t, repo, "other.txt", []byte("other"))

	stashRev := &git.RevParse{Rev: git.StashRef, Verify: true, Quiet: true}
	before, err := repo.RevParse(ctx, stashRev)
	require.NoError(t, err)
	require.Empty(t, before, "no stash should exist yet")

	require.NoError(t, repo.StashPush(ctx, git.StashPush{
		Message:          "pit: test",
		Paths:            []string{"keep me.txt"},
		IncludeUntracked: true,
	}))
	require.NoFileExists(t, filepath.Join(repo.Dir(), "keep me.txt"))
	require.FileExists(t, filepath.Join(repo.Dir(), "other.txt"))

	after, err := repo.RevParse(ctx, stashRev)
	require.NoError(t, err)
	require.True(t, git.IsObjectID(after), "stash ref should resolve to an object id: %q", after)

	ref := "refs/pit/snapshots/test"
	require.NoError(t, repo.UpdateRef(ctx, &git.UpdateRef{Ref: ref, New: after, Old: git.Missing}))
	require.Error(t,
		repo.UpdateRef(ctx, &git.UpdateRef{Ref: ref, New: after, Old: git.Missing}),
		"creating an existing ref should fail",
	)

	require.NoError(t, repo.StashPop(ctx, git.StashPop{Index: true}))
	body, err := os.ReadFile(filepath.Join(repo.Dir(), "keep me.txt"))
	require.NoError(t, err)
	require.Equal(t, "keep", string(body))

	pinned, err := repo.RevParse(ctx, &git.RevParse{Rev: ref, Verify: true})
	require.NoError(t, err)
	require.Equal(t, after, pinned, "snapshot ref should outlive the stash entry")

	head, err := repo.RevParse(ctx, &git.RevParse{Rev: "HEAD"})
	require.NoError(t, err)
	require.Error(t,
		repo.DeleteRef(ctx, &git.DeleteRef{Ref: ref, Old: head}),
		"deleting a ref that moved should fail",
	)
	require.NoError(t, repo.DeleteRef(ctx, &git.DeleteRef{Ref: ref, Old: after}))
	gone, err := repo.RevParse(ctx, &git.RevParse{Rev: ref, Verify: true, Quiet: true})
	require.NoError(t, err)
	require.Empty(t, gone)
}

func TestIsObjectID(t *testing.T) {
	require.True(t, git.IsObjectID(strings.Repeat("a1", 20)))
	require.True(t, git.IsObjectID(strings.Repeat("0f", 32)))
	require.False(t, git.IsObjectID(""))
	require.False(t, git.IsObjectID(strings.Repeat("A1", 20)))
	require.False(t, git.IsObjectID(strings.Repeat("g", 40)))
	require.False(t, git.IsObjectID("abc123"))
}

func TestShortSha(t *testing.T) {
	require.Equal(t, "0123456", git.ShortSha("0123456789abcdef"))
	require.Equal(t, "abc", git.ShortSha("abc"))
}
