package git

import (
	"emperror.dev/errors"
)

// ErrUnknownStatusCode means a status code could not be labelled. Every code
// accepted by the parser has a label, so this indicates an internal bug.
var ErrUnknownStatusCode = errors.Sentinel("internal error: no label for status code")

var statusLabels = map[byte]string{
	'A': "new file",
	'C': "copied",
	'D': "deleted",
	'M': "modified",
	'R': "renamed",
	'T': "typechange",
	'!': "ignored",
	'?': "untracked",
}

// Label returns the human readable description of a status code.
func Label(code StatusCode) (string, error) {
	if len(code) != 2 {
		return "", errors.WrapIff(ErrUnknownStatusCode, "status code %q", string(code))
	}
	if code.IsUnmerged() {
		return "unmerged", nil
	}
	index, hasIndex := statusLabels[code.Index()]
	worktree, hasWorktree := statusLabels[code.Worktree()]
	switch {
	case hasIndex && hasWorktree && index != worktree:
		return index + " & " + worktree, nil
	case hasIndex:
		return index, nil
	case hasWorktree:
		return worktree, nil
	default:
		return "", errors.WrapIff(ErrUnknownStatusCode, "status code %q", string(code))
	}
}
