// Package store manages the repository-local .pit directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/meta/jsonfiledb"
	"github.com/CarterFendley/pit/internal/pathspec"
	"github.com/sirupsen/logrus"
)

const (
	// DirName is the name of the store directory at the repository toplevel.
	DirName = ".pit"
	// LogName is the snapshot log inside the store directory.
	LogName = "log.json"
	// IncludeName is the include spec inside the store directory.
	IncludeName = "include"
)

var (
	ErrStoreNotFound = errors.Sentinel("pit is not initialized in this repository")
	ErrStoreExists   = errors.Sentinel("pit does not support reinitialization: the repository already contains a .pit directory")
)

// LoadError is returned when the store exists but its content can't be used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

const defaultIncludeSpec = `# Pit include files are treated written in the git pathspec syntax
# See more here: https://git-scm.com/docs/gitglossary#Documentation/gitglossary.txt-aiddefpathspecapathspec
*
`

type Store struct {
	dir string
	db  *jsonfiledb.DB
	log logrus.FieldLogger
}

// Locate returns where the store of the repository rooted at toplevel lives.
// It does not check that the store exists.
func Locate(toplevel string) string {
	return filepath.Join(toplevel, DirName)
}

// Create initializes an empty store in the repository rooted at toplevel.
func Create(toplevel string, log logrus.FieldLogger) (_ *Store, reterr error) {
	info, err := os.Stat(toplevel)
	if err != nil {
		return nil, errors.WrapIff(err, "cannot create pit store in %q", toplevel)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("cannot create pit store: %q is not a directory", toplevel)
	}

	dir := Locate(toplevel)
	if _, err := os.Lstat(dir); err == nil {
		return nil, errors.WithStack(ErrStoreExists)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return nil, errors.WithStack(ErrStoreExists)
		}
		return nil, errors.WrapIff(err, "failed to create %q", dir)
	}

	// Remove the partially created store unless everything below succeeds.
	created := false
	defer func() {
		if created {
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			log.WithError(err).WithField("dir", dir).Warn("failed to clean up partially created pit store")
		}
	}()

	db, err := jsonfiledb.Create(filepath.Join(dir, LogName), log)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, IncludeName), []byte(defaultIncludeSpec), 0644); err != nil {
		return nil, errors.WrapIf(err, "failed to write include file")
	}

	created = true
	log.WithField("dir", dir).Debug("created pit store")
	return &Store{dir: dir, db: db, log: log}, nil
}

// Open loads the store of the repository rooted at toplevel.
func Open(toplevel string, log logrus.FieldLogger) (*Store, error) {
	dir := Locate(toplevel)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithStack(ErrStoreNotFound)
		}
		return nil, errors.WrapIff(err, "failed to open pit store %q", dir)
	}
	if !info.IsDir() {
		return nil, &LoadError{Path: dir, Err: errors.New("not a directory")}
	}

	logPath := filepath.Join(dir, LogName)
	db, err := jsonfiledb.Open(logPath, log)
	if err != nil {
		return nil, &LoadError{Path: logPath, Err: err}
	}
	log.WithField("dir", dir).Debug("opened pit store")
	return &Store{dir: dir, db: db, log: log}, nil
}

// Dir returns the path of the .pit directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) LogPath() string {
	return s.db.Path()
}

func (s *Store) IncludePath() string {
	return filepath.Join(s.dir, IncludeName)
}

func (s *Store) DB() meta.DB {
	return s.db
}

// IncludeSpec loads the include spec of the store.
func (s *Store) IncludeSpec() (*pathspec.IncludeSpec, error) {
	spec, err := pathspec.LoadIncludeSpec(s.IncludePath())
	if err != nil {
		return nil, &LoadError{Path: s.IncludePath(), Err: err}
	}
	return spec, nil
}
