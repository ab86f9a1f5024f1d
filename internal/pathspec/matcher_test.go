package pathspec_test

import (
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/pathspec"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	for _, tt := range []struct {
		Name     string
		Patterns []string
		Match    []string
		NoMatch  []string
	}{
		{
			Name:     "star",
			Patterns: []string{"*"},
			Match:    []string{"a.txt", "dir/", "dir/b.txt", "white   space.txt", `"quotes.txt"`},
		},
		{
			Name:     "negation wins when last",
			Patterns: []string{"*", "!file_untracked.txt"},
			Match:    []string{"file_staged.txt", "dir/"},
			NoMatch:  []string{"file_untracked.txt"},
		},
		{
			Name:     "last match wins",
			Patterns: []string{"!a.txt", "*.txt"},
			Match:    []string{"a.txt", "b.txt"},
			NoMatch:  []string{"c.go"},
		},
		{
			Name:     "directory only",
			Patterns: []string{"dir/"},
			Match:    []string{"dir/", "dir/file_one.txt", "nested/dir/"},
			NoMatch:  []string{"dir", "file_untracked.txt", "ignored_dir/"},
		},
		{
			Name:     "anchored glob",
			Patterns: []string{"src/**/*.go"},
			Match:    []string{"src/main.go", "src/a/b/c.go"},
			NoMatch:  []string{"main.go", "src/README.md"},
		},
		{
			Name:     "comments and blank lines",
			Patterns: []string{"# My comment", "", "   ", "*.md", "# Another comment"},
			Match:    []string{"README.md"},
			NoMatch:  []string{"# My comment", "main.go"},
		},
		{
			Name:     "empty",
			Patterns: nil,
			NoMatch:  []string{"a.txt", "dir/"},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			m := pathspec.Compile(tt.Patterns)
			for _, p := range tt.Match {
				require.True(t, m.Match(p), "expected %q to match", p)
			}
			for _, p := range tt.NoMatch {
				require.False(t, m.Match(p), "expected %q not to match", p)
			}
		})
	}
}

func TestNilMatcher(t *testing.T) {
	var m *pathspec.Matcher
	require.False(t, m.Match("a.txt"))
	require.False(t, m.MatchChange(git.Change{Path: "a.txt", NewPath: "b.txt"}))
	require.Empty(t, m.MatchMany([]string{"a.txt"}))
	require.Nil(t, m.Patterns())
}

func TestMatchMany(t *testing.T) {
	m := pathspec.Compile([]string{"*.txt"})
	require.Equal(t,
		[]string{"a.txt", "b.txt"},
		m.MatchMany([]string{"b.txt", "main.go", "a.txt", "b.txt"}),
	)
}

func TestMatchChange(t *testing.T) {
	m := pathspec.Compile([]string{"new/"})
	require.True(t, m.MatchChange(git.Change{Path: "old.txt", NewPath: "new/old.txt"}))
	require.True(t, m.MatchChange(git.Change{Path: "new/a.txt", NewPath: "a.txt"}))
	require.False(t, m.MatchChange(git.Change{Path: "a.txt", NewPath: "b.txt"}))
	require.False(t, m.MatchChange(git.Change{Path: "a.txt"}))
}

func TestPatterns(t *testing.T) {
	m := pathspec.Compile([]string{"# comment", "*", "", "!x\r"})
	require.Equal(t, []string{"*", "!x"}, m.Patterns())
}
