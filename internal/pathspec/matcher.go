// Package pathspec matches repository paths against gitignore-style pattern
// lines and parses pit include specs.
package pathspec

import (
	"strings"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/exp/slices"
)

// Matcher is a compiled, ordered list of gitignore-style patterns. When
// several patterns match a path the last one wins; a negated ("!") pattern
// winning means the path does not match.
//
// A nil *Matcher matches nothing.
type Matcher struct {
	patterns []string
	m        gitignore.Matcher
}

// Compile builds a Matcher from pattern lines. Blank lines and lines starting
// with "#" are skipped.
func Compile(lines []string) *Matcher {
	var (
		patterns []string
		compiled []gitignore.Pattern
	)
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
		compiled = append(compiled, gitignore.ParsePattern(line, nil))
	}
	return &Matcher{
		patterns: patterns,
		m:        gitignore.NewMatcher(compiled),
	}
}

// Patterns returns the effective (non-comment, non-blank) pattern lines.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.patterns)
}

// Match reports whether path is selected by the patterns. Paths are relative
// to the repository root and use "/" separators; a trailing "/" marks a
// directory (as git status reports untracked directories).
func (m *Matcher) Match(path string) bool {
	if m == nil || path == "" {
		return false
	}
	isDir := strings.HasSuffix(path, "/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return m.m.Match(parts, isDir)
}

// MatchMany returns the matching subset of paths, sorted and deduplicated.
func (m *Matcher) MatchMany(paths []string) []string {
	var matched []string
	for _, p := range paths {
		if m.Match(p) {
			matched = append(matched, p)
		}
	}
	slices.Sort(matched)
	return slices.Compact(matched)
}

// MatchChange reports whether any path of c matches. For renames this means
// the pair is selected if either the old or the new name matches.
func (m *Matcher) MatchChange(c git.Change) bool {
	for _, p := range c.Paths() {
		if m.Match(p) {
			return true
		}
	}
	return false
}
