package meta

type DB interface {
	ReadTx() ReadTx
	WriteTx() WriteTx
}

// ReadTx is a transaction that can be used to read from the database.
// It presents a consistent view of the underlying database.
type ReadTx interface {
	// Snapshot returns the snapshot with the given ID. If no such snapshot
	// exists, the second return value is false.
	Snapshot(id string) (Snapshot, bool)
	// AllSnapshots returns a map of all snapshots in the database keyed by ID.
	AllSnapshots() map[string]Snapshot
}

// WriteTx is a transaction that can be used to modify the database.
// The transaction MUST be finalized by calling either Abort or Commit.
type WriteTx interface {
	ReadTx
	// Abort finalizes the transaction without committing any changes.
	// Abort can be called even after the transaction has been finalized (which
	// is effectively a no-op).
	Abort()
	// Commit finalizes the transaction and commits all changes.
	// If an error is returned, the data could not be committed.
	// Commit will panic if called after the transaction has been finalized.
	Commit() error
	// AddSnapshot appends a new snapshot to the log. Snapshots are never
	// overwritten: ErrSnapshotExists is returned if the ID is taken.
	AddSnapshot(snapshot Snapshot) error
}
