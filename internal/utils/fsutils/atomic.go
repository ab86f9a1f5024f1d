package fsutils

import (
	"os"
	"path/filepath"

	"emperror.dev/errors"
)

// WriteFileAtomic writes data to a temporary file next to path and renames it
// over path, so readers observe either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (reterr error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return errors.WrapIff(err, "failed to create temporary file for %q", path)
	}
	tmpPath := tmp.Name()
	defer func() {
		if reterr != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIff(err, "failed to write %q", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapIff(err, "failed to sync %q", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIff(err, "failed to close %q", tmpPath)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errors.WrapIff(err, "failed to chmod %q", tmpPath)
	}
	return errors.WrapIff(os.Rename(tmpPath, path), "failed to replace %q", path)
}
