package jsonfiledb

import (
	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/meta"
)

type writeTx struct {
	db *DB
	readTx
}

func (tx *writeTx) AddSnapshot(snapshot meta.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if _, ok := tx.state[snapshot.ID]; ok {
		return errors.WrapIff(meta.ErrSnapshotExists, "snapshot %q", snapshot.ID)
	}
	tx.state[snapshot.ID] = snapshot
	return nil
}

func (tx *writeTx) Abort() {
	if tx.db == nil {
		return
	}
	tx.db.stateMu.Unlock()
	tx.db = nil
}

func (tx *writeTx) Commit() error {
	if tx.db == nil {
		panic("invariant error: cannot commit a finalized transaction")
	}
	db := tx.db
	tx.db = nil
	// Always unlock the database even if there is an error.
	defer db.stateMu.Unlock()
	if err := tx.state.write(db.filepath, db.log); err != nil {
		return err
	}
	db.state = tx.state
	return nil
}

var _ meta.WriteTx = &writeTx{}
