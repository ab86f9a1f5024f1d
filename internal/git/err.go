package git

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/CarterFendley/pit/internal/utils/executils"
)

var (
	ErrGitNotFound = errors.Sentinel(
		"unable to find the git executable (pit depends on git, please make sure it is installed and on your $PATH)",
	)
	ErrNotARepository = errors.Sentinel(
		"not a git repository (or any of the parent directories), pit is only accessible within git repositories",
	)
)

// CommandError is returned when git exits with a non-zero exit status.
type CommandError struct {
	Args     []string
	ExitCode int
	// Stderr is git's own diagnostic output (trimmed).
	Stderr string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", executils.FormatCommandLine(e.Args), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// StderrMatches reports whether err is a *CommandError whose stderr contains
// target.
func StderrMatches(err error, target string) bool {
	if cmdErr, ok := errutils.As[*CommandError](err); ok {
		return strings.Contains(cmdErr.Stderr, target)
	}
	return false
}
