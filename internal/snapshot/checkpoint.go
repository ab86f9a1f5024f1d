// Package snapshot records the included changes of a working tree as a git
// stash commit kept alive by a ref under refs/pit/snapshots/.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/utils/logutils"
	"github.com/sirupsen/logrus"
)

// Phase is a step of checkpoint creation.
type Phase string

const (
	PhasePush Phase = "push"
	PhaseRef  Phase = "ref"
	PhasePop  Phase = "pop"
)

var (
	ErrNothingToSnapshot = errors.Sentinel("there are no included changes to snapshot")
	errNothingStashed    = errors.Sentinel("git stash did not record any changes")
)

// CheckpointError is returned when one of the git steps of a checkpoint fails.
type CheckpointError struct {
	Phase Phase
	Err   error
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("failed to create checkpoint (%s): %s", e.Phase, e.Err)
}

func (e *CheckpointError) Unwrap() error {
	return e.Err
}

type Opts struct {
	// ID of the new snapshot. It must be valid (see ValidateID) and unused.
	ID      string
	Message string
	// Included is the reconciled set of changes to record.
	Included git.StatusMap
	User     string
	Host     string
	// CreatedAt defaults to the current time.
	CreatedAt time.Time
	Log       logrus.FieldLogger
}

// Create records opts.Included as a new snapshot and appends it to the log
// through tx. tx is committed on success and aborted on failure.
//
// The working tree is left as it was: the changes are stashed, the stash
// commit is referenced from the snapshot ref, and the stash is popped again.
func Create(ctx context.Context, repo *git.Repo, tx meta.WriteTx, opts Opts) (meta.Snapshot, error) {
	defer tx.Abort()
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("snapshot", opts.ID)

	if err := ValidateID(opts.ID); err != nil {
		return meta.Snapshot{}, err
	}
	if _, exists := tx.Snapshot(opts.ID); exists {
		return meta.Snapshot{}, errors.WrapIff(meta.ErrSnapshotExists, "snapshot %q", opts.ID)
	}
	included := opts.Included
	if included.Len() == 0 {
		return meta.Snapshot{}, errors.WithStack(ErrNothingToSnapshot)
	}

	snapshot := meta.Snapshot{
		ID:        opts.ID,
		CreatedAt: opts.CreatedAt,
		User:      opts.User,
		Host:      opts.Host,
		Message:   opts.Message,
		Paths:     included.Paths(),
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}
	snapshot.CreatedAt = snapshot.CreatedAt.UTC().Truncate(time.Second)

	// Phase 1: stash the included paths.
	before, err := stashHead(ctx, repo)
	if err != nil {
		return meta.Snapshot{}, &CheckpointError{PhasePush, err}
	}
	// Untracked files are always allowed: the pathspecs already restrict what
	// is stashed, and git rejects pathspecs missing from the index otherwise
	// (e.g., the old name of a staged rename).
	_, hasIgnored := included[git.StatusIgnored]
	log.WithField("paths", logutils.Format("%q", included.Paths())).Debug("stashing included paths")
	err = repo.StashPush(ctx, git.StashPush{
		Message:          "pit: " + opts.ID,
		Paths:            included.Paths(),
		IncludeUntracked: true,
		IncludeIgnored:   hasIgnored,
	})
	if err != nil {
		return meta.Snapshot{}, &CheckpointError{PhasePush, err}
	}
	after, err := stashHead(ctx, repo)
	if err != nil {
		return meta.Snapshot{}, &CheckpointError{PhasePush, err}
	}
	if after == before {
		return meta.Snapshot{}, &CheckpointError{PhasePush, errors.WithStack(errNothingStashed)}
	}
	log.WithField("stash", git.ShortSha(after)).Debug("stashed included changes")

	// Phase 2: keep the stash commit reachable from the snapshot ref.
	if err := recordRef(ctx, repo, snapshot.Ref(), after); err != nil {
		// Put the changes back before giving up.
		if popErr := repo.StashPop(ctx, git.StashPop{Index: true}); popErr != nil {
			log.WithError(popErr).Warn("failed to restore the stashed changes (they are still available via `git stash list`)")
		}
		return meta.Snapshot{}, &CheckpointError{PhaseRef, err}
	}
	snapshot.GitHash = after

	// Phase 3: put the changes back.
	if err := repo.StashPop(ctx, git.StashPop{Index: true}); err != nil {
		// The changes stay in the stash entry. Drop the ref so no snapshot
		// exists without a log entry and the same ID can be used again.
		if delErr := repo.DeleteRef(ctx, &git.DeleteRef{Ref: snapshot.Ref(), Old: after}); delErr != nil {
			log.WithError(delErr).Warn("failed to remove the snapshot ref of the failed checkpoint")
		}
		return meta.Snapshot{}, &CheckpointError{PhasePop, errors.WrapIf(err,
			"the included changes are still stashed (restore them with `git stash pop --index`)")}
	}
	log.Debug("restored working tree")

	if err := tx.AddSnapshot(snapshot); err != nil {
		return meta.Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return meta.Snapshot{}, err
	}
	return snapshot, nil
}

func recordRef(ctx context.Context, repo *git.Repo, ref string, oid string) error {
	if !git.IsObjectID(oid) {
		return errors.Errorf("unexpected stash object id %q", oid)
	}
	return repo.UpdateRef(ctx, &git.UpdateRef{Ref: ref, New: oid, Old: git.Missing})
}

func stashHead(ctx context.Context, repo *git.Repo) (string, error) {
	return repo.RevParse(ctx, &git.RevParse{Rev: git.StashRef, Verify: true, Quiet: true})
}
