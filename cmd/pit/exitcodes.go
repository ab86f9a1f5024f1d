package main

import (
	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/snapshot"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/CarterFendley/pit/internal/utils/uiutils"
)

// Process exit codes. They are part of the command line interface, so
// existing values must not change.
const (
	exitOK                 = 0
	exitGeneric            = 1
	exitGitNotFound        = 2
	exitNotARepository     = 3
	exitStoreExists        = 4
	exitInitFailed         = 5
	exitStoreNotFound      = 6
	exitStoreLoadFailed    = 7
	exitSnapshotNotFound   = 8
	exitCheckpointPush     = 9
	exitCheckpointRef      = 10
	exitCheckpointPop      = 11
	exitUserAborted        = 12
	exitSnapshotCollision  = 13
	exitStatusParseFailure = 14
)

var errSnapshotNotFound = errors.Sentinel("no snapshot with this identifier")

// initError marks failures of `pit init` that have no more specific code.
type initError struct {
	err error
}

func (e *initError) Error() string {
	return "failed to initialize pit: " + e.err.Error()
}

func (e *initError) Unwrap() error {
	return e.err
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if exitSilently, ok := errutils.As[uiutils.ErrExitSilently](err); ok {
		return exitSilently.ExitCode
	}
	if cpErr, ok := errutils.As[*snapshot.CheckpointError](err); ok {
		switch cpErr.Phase {
		case snapshot.PhasePush:
			return exitCheckpointPush
		case snapshot.PhaseRef:
			return exitCheckpointRef
		case snapshot.PhasePop:
			return exitCheckpointPop
		}
	}
	switch {
	case errors.Is(err, git.ErrGitNotFound):
		return exitGitNotFound
	case errors.Is(err, git.ErrNotARepository):
		return exitNotARepository
	case errors.Is(err, store.ErrStoreExists):
		return exitStoreExists
	case errors.Is(err, store.ErrStoreNotFound):
		return exitStoreNotFound
	case errors.Is(err, errSnapshotNotFound):
		return exitSnapshotNotFound
	case errors.Is(err, uiutils.ErrUserAborted):
		return exitUserAborted
	case errors.Is(err, meta.ErrSnapshotExists):
		return exitSnapshotCollision
	}
	if _, ok := errutils.As[*store.LoadError](err); ok {
		return exitStoreLoadFailed
	}
	if _, ok := errutils.As[*git.ParseError](err); ok {
		return exitStatusParseFailure
	}
	if _, ok := errutils.As[*initError](err); ok {
		return exitInitFailed
	}
	return exitGeneric
}
