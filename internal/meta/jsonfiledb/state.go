package jsonfiledb

import (
	"encoding/json"
	"os"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/utils/fsutils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

// state is the content of the log file: snapshots keyed by ID.
type state map[string]meta.Snapshot

func readState(filepath string) (state, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to read pit log file %q", filepath)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.WrapIff(err, "malformed pit log file %q", filepath)
	}
	if st == nil {
		// The file contained a JSON null.
		return nil, errors.Errorf("malformed pit log file %q: expected a JSON object", filepath)
	}
	for id, snapshot := range st {
		if err := snapshot.Validate(); err != nil {
			return nil, errors.WrapIff(err, "malformed pit log file %q", filepath)
		}
		if snapshot.ID != id {
			return nil, errors.Errorf(
				"malformed pit log file %q: entry %q has mismatched id %q",
				filepath, id, snapshot.ID,
			)
		}
	}
	return st, nil
}

func (s state) copy() state {
	return maps.Clone(s)
}

func (s state) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.WrapIf(err, "failed to encode pit log")
	}
	return append(data, '\n'), nil
}

// write replaces the log file. The previous content is kept as a backup
// until the new content is durably in place.
func (s state) write(filepath string, log logrus.FieldLogger) error {
	data, err := s.marshal()
	if err != nil {
		return err
	}
	err = fsutils.WithBackup(filepath, fsutils.BackupOpts{Log: log}, func() error {
		return fsutils.WriteFileAtomic(filepath, data, 0644)
	})
	return errors.WrapIff(err, "failed to write pit log file %q", filepath)
}
