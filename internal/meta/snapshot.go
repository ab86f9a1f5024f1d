package meta

import (
	"cmp"
	"time"

	"emperror.dev/errors"
	"golang.org/x/exp/slices"
)

// SnapshotRefPrefix is the ref namespace snapshot commits are kept under.
const SnapshotRefPrefix = "refs/pit/snapshots/"

var (
	ErrSnapshotExists  = errors.Sentinel("a snapshot with this identifier already exists")
	ErrInvalidSnapshot = errors.Sentinel("invalid snapshot")
)

// Snapshot is one entry of the snapshot log.
type Snapshot struct {
	// The identifier of the snapshot. It is also the key of the entry in the
	// log file and the last component of its ref.
	ID string `json:"id"`
	// The stash commit that holds the snapshotted changes.
	GitHash string `json:"git_hash"`
	// When the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	User    string `json:"user,omitempty"`
	Host    string `json:"host,omitempty"`
	Message string `json:"message,omitempty"`
	// The paths that were part of the snapshot.
	Paths []string `json:"paths,omitempty"`
}

// Ref returns the name of the ref that keeps the snapshot commit alive.
func (s Snapshot) Ref() string {
	return SnapshotRefPrefix + s.ID
}

// Validate checks the fields every snapshot must have.
func (s Snapshot) Validate() error {
	switch {
	case s.ID == "":
		return errors.WrapIf(ErrInvalidSnapshot, "missing id")
	case s.GitHash == "":
		return errors.WrapIff(ErrInvalidSnapshot, "snapshot %q: missing git_hash", s.ID)
	case s.CreatedAt.IsZero():
		return errors.WrapIff(ErrInvalidSnapshot, "snapshot %q: missing created_at", s.ID)
	}
	return nil
}

// Chronological returns the snapshots newest first. Snapshots taken at the
// same time are ordered by ID.
func Chronological(snapshots map[string]Snapshot) []Snapshot {
	ret := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		ret = append(ret, s)
	}
	slices.SortFunc(ret, func(a, b Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ret
}
