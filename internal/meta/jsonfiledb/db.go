package jsonfiledb

import (
	"os"
	"sync"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/utils/fsutils"
	"github.com/sirupsen/logrus"
)

type DB struct {
	stateMu  sync.Mutex
	state    state
	filepath string
	log      logrus.FieldLogger
}

// Create creates a new, empty log file at the given path and opens it.
// It fails if the file already exists.
func Create(filepath string, log logrus.FieldLogger) (*DB, error) {
	data, err := state{}.marshal()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to create pit log file %q", filepath)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, errors.WrapIff(err, "failed to create pit log file %q", filepath)
	}
	if err := f.Close(); err != nil {
		return nil, errors.WrapIff(err, "failed to create pit log file %q", filepath)
	}
	return &DB{state: state{}, filepath: filepath, log: log}, nil
}

// Open opens the JSON log file at the given path. The file must exist.
//
// A backup left behind by an interrupted write is restored before reading.
func Open(filepath string, log logrus.FieldLogger) (*DB, error) {
	restored, err := fsutils.RestoreBackup(filepath)
	if err != nil {
		return nil, err
	}
	if restored {
		log.WithField("path", filepath).Warn("restored pit log from backup after an interrupted write")
	}
	st, err := readState(filepath)
	if err != nil {
		return nil, err
	}
	return &DB{state: st, filepath: filepath, log: log}, nil
}

// Path returns the path of the log file.
func (d *DB) Path() string {
	return d.filepath
}

func (d *DB) ReadTx() meta.ReadTx {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return &readTx{state: d.state.copy()}
}

// WriteTx opens a write transaction. Only one write transaction can be open
// at a time; WriteTx blocks until the previous one is finalized.
func (d *DB) WriteTx() meta.WriteTx {
	d.stateMu.Lock()
	return &writeTx{
		db:     d,
		readTx: readTx{state: d.state.copy()},
	}
}

var (
	_ meta.DB = &DB{}
)
