package gittest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/stretchr/testify/require"
)

// CreateFile writes body to filename (relative to the repository root),
// creating parent directories as needed.
func CreateFile(
	t *testing.T,
	repo *git.Repo,
	filename string,
	body []byte,
) string {
	t.Helper()
	fp := filepath.Join(repo.Dir(), filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	err := os.WriteFile(fp, body, 0644)
	require.NoError(t, err, "failed to write file: %s", filename)
	return fp
}

func AddFile(
	t *testing.T,
	repo *git.Repo,
	fp string,
) {
	t.Helper()
	_, err := repo.Git(context.Background(), "add", "--", fp)
	require.NoError(t, err, "failed to add file: %s", fp)
}

// WriteIgnore overwrites the repository's .gitignore with the given lines.
func WriteIgnore(t *testing.T, repo *git.Repo, lines ...string) {
	t.Helper()
	var body []byte
	for _, l := range lines {
		body = append(body, l...)
		body = append(body, '\n')
	}
	CreateFile(t, repo, ".gitignore", body)
}
