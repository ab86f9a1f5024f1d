package main

import (
	"fmt"
	"os"
	"os/user"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/config"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/snapshot"
	"github.com/CarterFendley/pit/internal/utils/colors"
	"github.com/CarterFendley/pit/internal/utils/uiutils"
	"github.com/spf13/cobra"
)

var snapshotFlags struct {
	ID          string
	Message     string
	NoUntracked bool
	Yes         bool
}

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Record the included changes as a new snapshot",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}
		s, err := getStore(ctx, repo)
		if err != nil {
			return err
		}

		includeUntracked := config.Pit.Snapshot.IncludeUntracked && !snapshotFlags.NoUntracked
		included, excluded, err := reconcileRepo(ctx, repo, s, includeUntracked)
		if err != nil {
			return err
		}
		if included.Len() == 0 {
			return errors.WithStack(snapshot.ErrNothingToSnapshot)
		}

		db := s.DB()
		id := snapshotFlags.ID
		if id == "" {
			tx := db.ReadTx()
			id = snapshot.GenerateID(func(id string) bool {
				_, ok := tx.Snapshot(id)
				return ok
			})
		}
		if err := snapshot.ValidateID(id); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		summary, err := formatStatus(included, excluded, colors.Included, colors.Excluded)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, summary)

		if config.Pit.Snapshot.Confirm && !snapshotFlags.Yes {
			question := fmt.Sprintf("Create snapshot %s with the included changes?", colors.Prompt(id))
			if err := uiutils.Confirm(question); err != nil {
				if errors.Is(err, uiutils.ErrNotATerminal) {
					return errors.WrapIf(err, "re-run with --yes to skip the confirmation")
				}
				return err
			}
		}

		snap, err := snapshot.Create(ctx, repo, db.WriteTx(), snapshot.Opts{
			ID:       id,
			Message:  snapshotFlags.Message,
			Included: included,
			User:     currentUser(),
			Host:     hostname(),
			Log:      log,
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out,
			"Created snapshot ", colors.ID(snap.ID),
			" ", colors.Hash("(", git.ShortSha(snap.GitHash), ")"), "\n",
		)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(
		&snapshotFlags.ID, "name", "n", "",
		"identifier of the new snapshot (generated if not given)",
	)
	snapshotCmd.Flags().StringVarP(
		&snapshotFlags.Message, "message", "m", "",
		"message to record with the snapshot",
	)
	snapshotCmd.Flags().BoolVar(
		&snapshotFlags.NoUntracked, "no-untracked", false,
		"do not include untracked files in the snapshot",
	)
	snapshotCmd.Flags().BoolVarP(
		&snapshotFlags.Yes, "yes", "y", false,
		"do not ask for confirmation",
	)
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
