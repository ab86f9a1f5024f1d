package jsonfiledb

import (
	"github.com/CarterFendley/pit/internal/meta"
	"golang.org/x/exp/maps"
)

type readTx struct {
	state state
}

var _ meta.ReadTx = &readTx{}

func (tx *readTx) Snapshot(id string) (meta.Snapshot, bool) {
	snapshot, ok := tx.state[id]
	return snapshot, ok
}

func (tx *readTx) AllSnapshots() map[string]meta.Snapshot {
	return maps.Clone(tx.state)
}
