package jsonfiledb_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/meta/jsonfiledb"
	"github.com/CarterFendley/pit/internal/utils/fsutils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var log = logrus.New()

func testSnapshot(id string) meta.Snapshot {
	return meta.Snapshot{
		ID:        id,
		GitHash:   "0123456789abcdef0123456789abcdef01234567",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		User:      "tester",
	}
}

func TestJSONFileDB(t *testing.T) {
	tempfile := filepath.Join(t.TempDir(), "log.json")

	_, err := jsonfiledb.Open(tempfile, log)
	require.ErrorIs(t, err, os.ErrNotExist, "db open should fail if the log file does not exist")

	db, err := jsonfiledb.Create(tempfile, log)
	require.NoError(t, err, "db create should succeed")
	_, err = jsonfiledb.Create(tempfile, log)
	require.ErrorIs(t, err, os.ErrExist, "db create should fail if the log file exists")

	if _, ok := db.ReadTx().Snapshot("foo"); ok {
		t.Error("non existent snapshot should not be found")
	}

	tx := db.WriteTx()
	require.NoError(t, tx.AddSnapshot(testSnapshot("foo")))
	require.NoError(t, tx.Commit(), "tx commit should succeed")

	tx = db.WriteTx()
	require.NoError(t, tx.AddSnapshot(testSnapshot("bar")))
	tx.Abort()
	tx.Abort()
	if _, ok := db.ReadTx().Snapshot("bar"); ok {
		t.Error("aborted tx should not commit changes")
	}

	foo, ok := db.ReadTx().Snapshot("foo")
	require.True(t, ok, "snapshot should be found")
	require.Equal(t, testSnapshot("foo"), foo)

	// Re-open the database and cause it to re-read from disk
	db, err = jsonfiledb.Open(tempfile, log)
	require.NoError(t, err, "db open should succeed if log file exists")
	foo, ok = db.ReadTx().Snapshot("foo")
	require.True(t, ok, "snapshot should be found after re-open")
	require.True(t, testSnapshot("foo").CreatedAt.Equal(foo.CreatedAt))
	require.Len(t, db.ReadTx().AllSnapshots(), 1)

	_, err = os.Stat(fsutils.BackupPath(tempfile))
	require.True(t, os.IsNotExist(err), "backup should be removed after a successful commit")
}

func TestJSONFileDBCollision(t *testing.T) {
	tempfile := filepath.Join(t.TempDir(), "log.json")
	db, err := jsonfiledb.Create(tempfile, log)
	require.NoError(t, err)

	tx := db.WriteTx()
	require.NoError(t, tx.AddSnapshot(testSnapshot("foo")))
	require.NoError(t, tx.Commit())
	before, err := os.ReadFile(tempfile)
	require.NoError(t, err)

	tx = db.WriteTx()
	dup := testSnapshot("foo")
	dup.Message = "second"
	require.ErrorIs(t, tx.AddSnapshot(dup), meta.ErrSnapshotExists)
	tx.Abort()

	after, err := os.ReadFile(tempfile)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after), "log file should be untouched")

	tx = db.WriteTx()
	require.ErrorIs(t, tx.AddSnapshot(meta.Snapshot{ID: "no-hash"}), meta.ErrInvalidSnapshot)
	tx.Abort()
}

func TestJSONFileDBCommitPanicsAfterFinalize(t *testing.T) {
	db, err := jsonfiledb.Create(filepath.Join(t.TempDir(), "log.json"), log)
	require.NoError(t, err)
	tx := db.WriteTx()
	require.NoError(t, tx.Commit())
	require.Panics(t, func() { _ = tx.Commit() })
	// The lock was released, so a new transaction can be opened.
	db.WriteTx().Abort()
}

func TestJSONFileDBMalformed(t *testing.T) {
	for _, tt := range []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"null", "null"},
		{"array", "[]"},
		{"missing hash", `{"a": {"id": "a", "created_at": "2024-03-01T12:00:00Z"}}`},
		{"mismatched id", `{"a": {"id": "b", "git_hash": "abc", "created_at": "2024-03-01T12:00:00Z"}}`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			tempfile := filepath.Join(t.TempDir(), "log.json")
			require.NoError(t, os.WriteFile(tempfile, []byte(tt.content), 0644))
			_, err := jsonfiledb.Open(tempfile, log)
			require.Error(t, err)
		})
	}
}

func TestJSONFileDBRestoresBackup(t *testing.T) {
	tempfile := filepath.Join(t.TempDir(), "log.json")
	db, err := jsonfiledb.Create(tempfile, log)
	require.NoError(t, err)
	tx := db.WriteTx()
	require.NoError(t, tx.AddSnapshot(testSnapshot("foo")))
	require.NoError(t, tx.Commit())

	// Simulate a write that was interrupted after the backup was taken.
	good, err := os.ReadFile(tempfile)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(fsutils.BackupPath(tempfile), good, 0644))
	require.NoError(t, os.WriteFile(tempfile, []byte(`{"fo`), 0644))

	db, err = jsonfiledb.Open(tempfile, log)
	require.NoError(t, err)
	_, ok := db.ReadTx().Snapshot("foo")
	require.True(t, ok)
	_, err = os.Stat(fsutils.BackupPath(tempfile))
	require.True(t, os.IsNotExist(err))
}
