// Package reconcile partitions a working tree status into the changes that
// belong in a snapshot and those that do not.
package reconcile

import (
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/pathspec"
	"golang.org/x/exp/slices"
)

// ChangeMatcher selects changes. *pathspec.Matcher implements it.
type ChangeMatcher interface {
	MatchChange(c git.Change) bool
}

// Reconcile splits status into the changes selected by include (and, for
// ignored files, by force) and everything else.
//
// Ignored files are never included unless force selects them, and are never
// reported as excluded. Rename pairs are selected when either path matches and
// are always kept whole. A nil force means no ignored file is included.
//
// Both results are fresh, normalized maps; status is not modified.
func Reconcile(status git.StatusMap, include, force ChangeMatcher) (included, excluded git.StatusMap) {
	selected := map[git.StatusCode][]git.Change{}
	for code, changes := range status {
		matcher := include
		if code == git.StatusIgnored {
			matcher = force
		}
		if matcher == nil {
			continue
		}
		for _, c := range changes {
			if matcher.MatchChange(c) {
				selected[code] = append(selected[code], c)
			}
		}
	}
	included = git.FromBuckets(selected)

	rest := map[git.StatusCode][]git.Change{}
	for code, changes := range status {
		if code == git.StatusIgnored {
			continue
		}
		for _, c := range changes {
			if !slices.Contains(included[code], c) {
				rest[code] = append(rest[code], c)
			}
		}
	}
	excluded = git.FromBuckets(rest)
	return included, excluded
}

// ReconcileWithSpec reconciles status against the matchers compiled from spec.
func ReconcileWithSpec(status git.StatusMap, spec *pathspec.IncludeSpec) (included, excluded git.StatusMap) {
	include, force := spec.Matchers()
	if force == nil {
		return Reconcile(status, include, nil)
	}
	return Reconcile(status, include, force)
}
