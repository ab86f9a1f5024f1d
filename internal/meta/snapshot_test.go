package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotValidate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, tt := range []struct {
		name      string
		snapshot  Snapshot
		expectErr bool
	}{
		{
			name:     "complete",
			snapshot: Snapshot{ID: "brave-otter", GitHash: "abc", CreatedAt: now},
		},
		{
			name:      "missing id",
			snapshot:  Snapshot{GitHash: "abc", CreatedAt: now},
			expectErr: true,
		},
		{
			name:      "missing hash",
			snapshot:  Snapshot{ID: "brave-otter", CreatedAt: now},
			expectErr: true,
		},
		{
			name:      "missing time",
			snapshot:  Snapshot{ID: "brave-otter", GitHash: "abc"},
			expectErr: true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snapshot.Validate()
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshotRef(t *testing.T) {
	assert.Equal(t, "refs/pit/snapshots/brave-otter", Snapshot{ID: "brave-otter"}.Ref())
}

func TestChronological(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshots := map[string]Snapshot{
		"old":   {ID: "old", CreatedAt: t0},
		"new":   {ID: "new", CreatedAt: t0.Add(time.Hour)},
		"tie-b": {ID: "tie-b", CreatedAt: t0.Add(time.Minute)},
		"tie-a": {ID: "tie-a", CreatedAt: t0.Add(time.Minute)},
	}
	var ids []string
	for _, s := range Chronological(snapshots) {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"new", "tie-a", "tie-b", "old"}, ids)
	assert.Empty(t, Chronological(nil))
}
