package fsutils

import (
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".bak"

// BackupPath returns the path of the backup kept for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

type BackupOpts struct {
	// Move moves the original to the backup location instead of copying it,
	// so fn starts without the file in place.
	Move bool
	Log  logrus.FieldLogger
}

// WithBackup saves a backup of path, runs fn and then either removes the
// backup (fn succeeded) or restores it over path (fn failed or panicked).
//
// path must be an existing regular file and must not already have a backup.
func WithBackup(path string, opts BackupOpts, fn func() error) (reterr error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapIff(err, "cannot back up %q", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("cannot back up %q: not a regular file", path)
	}
	backup := BackupPath(path)
	if _, err := os.Lstat(backup); err == nil {
		return errors.Errorf("cannot back up %q: backup %q already exists", path, backup)
	}

	if opts.Move {
		err = os.Rename(path, backup)
	} else {
		err = copyFile(path, backup, info.Mode().Perm())
	}
	if err != nil {
		return errors.WrapIff(err, "failed to back up %q", path)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		log.WithField("path", path).Debug("restoring file from backup")
		if err := os.Rename(backup, path); err != nil {
			reterr = errors.Combine(reterr, errors.WrapIff(err, "failed to restore %q from backup", path))
		}
	}()

	if err := fn(); err != nil {
		return err
	}
	committed = true
	if err := os.Remove(backup); err != nil {
		log.WithError(err).WithField("backup", backup).Warn("failed to remove backup file")
	}
	return nil
}

// RestoreBackup moves a leftover backup of path (from an interrupted
// WithBackup) back into place. It reports whether a backup was restored.
func RestoreBackup(path string) (bool, error) {
	backup := BackupPath(path)
	if _, err := os.Lstat(backup); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.Rename(backup, path); err != nil {
		return false, errors.WrapIff(err, "failed to restore %q from backup", path)
	}
	return true, nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
