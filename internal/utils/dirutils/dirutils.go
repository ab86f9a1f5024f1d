package dirutils

import (
	"os"
	"sync/atomic"

	"emperror.dev/errors"
)

// ErrNestedWithDir is returned when WithDir is called while another WithDir
// call is still running. The working directory is process-wide state, so
// nested (or concurrent) redirections would restore the wrong directory.
var ErrNestedWithDir = errors.Sentinel("dirutils.WithDir calls must not be nested")

var active atomic.Bool

// WithDir changes the working directory to dir, runs fn, and changes back to
// the original working directory, even if fn returns an error or panics.
func WithDir(dir string, fn func() error) (reterr error) {
	if !active.CompareAndSwap(false, true) {
		return errors.WithStack(ErrNestedWithDir)
	}
	defer active.Store(false)

	original, err := os.Getwd()
	if err != nil {
		return errors.WrapIf(err, "failed to determine working directory")
	}
	if err := os.Chdir(dir); err != nil {
		return errors.WrapIff(err, "failed to change directory to %q", dir)
	}
	defer func() {
		if err := os.Chdir(original); err != nil {
			reterr = errors.Combine(reterr, errors.WrapIff(err, "failed to restore working directory %q", original))
		}
	}()
	return fn()
}
