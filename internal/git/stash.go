package git

import (
	"bytes"
	"context"
	"strings"

	"emperror.dev/errors"
)

// StashRef is the ref git keeps the most recent stash entry in.
const StashRef = "refs/stash"

type StashPush struct {
	// Message is recorded as the stash entry's message.
	Message string
	// Paths limits the stash to the given paths. They are passed literally
	// (no glob expansion) through stdin, so any file name is safe.
	Paths []string
	// IncludeUntracked stashes untracked files as well (--include-untracked).
	IncludeUntracked bool
	// IncludeIgnored stashes untracked and ignored files (--all). It takes
	// precedence over IncludeUntracked.
	IncludeIgnored bool
}

// StashPush runs `git stash push`. It does not report whether a stash entry
// was actually created; compare the StashRef before and after to find out.
func (r *Repo) StashPush(ctx context.Context, opts StashPush) error {
	args := []string{"stash", "push"}
	switch {
	case opts.IncludeIgnored:
		args = append(args, "--all")
	case opts.IncludeUntracked:
		args = append(args, "--include-untracked")
	}
	if opts.Message != "" {
		args = append(args, "--message", opts.Message)
	}
	if len(opts.Paths) == 0 {
		_, err := r.Git(ctx, args...)
		return err
	}

	args = append(args, "--pathspec-from-file=-", "--pathspec-file-nul")
	var stdin bytes.Buffer
	for _, p := range opts.Paths {
		stdin.WriteString(":(literal)")
		// Untracked directories are reported with a trailing slash; without it
		// the pathspec still covers everything inside.
		stdin.WriteString(strings.TrimSuffix(p, "/"))
		stdin.WriteByte(0)
	}
	_, err := r.GitStdin(ctx, args, &stdin)
	return err
}

type StashPop struct {
	// Index also restores the state of the index (--index).
	Index bool
}

func (r *Repo) StashPop(ctx context.Context, opts StashPop) error {
	args := []string{"stash", "pop"}
	if opts.Index {
		args = append(args, "--index")
	}
	_, err := r.Git(ctx, args...)
	return err
}

type RevParse struct {
	Rev string
	// Verify makes git fail unless Rev names exactly one valid object.
	Verify bool
	// Quiet suppresses the error message (only meaningful with Verify); a
	// missing rev then results in an empty string and no error.
	Quiet bool
}

func (r *Repo) RevParse(ctx context.Context, rp *RevParse) (string, error) {
	args := []string{"rev-parse"}
	if rp.Verify {
		args = append(args, "--verify")
	}
	if rp.Quiet {
		args = append(args, "--quiet")
	}
	args = append(args, rp.Rev)
	if rp.Quiet {
		out, err := r.Run(ctx, &RunOpts{Args: args})
		if err != nil {
			return "", err
		}
		if out.ExitCode != 0 {
			return "", nil
		}
		return strings.TrimSpace(string(out.Stdout)), nil
	}
	return r.Git(ctx, args...)
}

type UpdateRef struct {
	// The name of the ref (e.g., refs/pit/snapshots/my-snapshot).
	Ref string
	// The Git object ID to set the ref to.
	New string
	// Only update the ref if the current value (before the update) is equal to
	// this object ID. Use Missing to only create the ref if it didn't
	// already exists.
	Old string
}

// UpdateRef updates the specified ref within the Git repository.
func (r *Repo) UpdateRef(ctx context.Context, update *UpdateRef) error {
	args := []string{"update-ref", update.Ref, update.New}
	if update.Old != "" {
		args = append(args, update.Old)
	}
	_, err := r.Git(ctx, args...)
	return errors.WrapIff(err, "failed to write ref %q (%s)", update.Ref, ShortSha(update.New))
}

type DeleteRef struct {
	Ref string
	// Only delete the ref if it currently points to this object ID.
	Old string
}

// DeleteRef removes the specified ref from the Git repository.
func (r *Repo) DeleteRef(ctx context.Context, del *DeleteRef) error {
	args := []string{"update-ref", "-d", del.Ref}
	if del.Old != "" {
		args = append(args, del.Old)
	}
	_, err := r.Git(ctx, args...)
	return errors.WrapIff(err, "failed to delete ref %q", del.Ref)
}

// ShortSha abbreviates an object id for display.
func ShortSha(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// IsObjectID reports whether s looks like a full SHA-1 or SHA-256 object id.
func IsObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
