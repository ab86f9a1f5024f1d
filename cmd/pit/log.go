package main

import (
	"fmt"
	"time"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/utils/colors"
	"github.com/CarterFendley/pit/internal/utils/timeutils"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
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
		snapshots := meta.Chronological(s.DB().ReadTx().AllSnapshots())
		if len(snapshots) == 0 {
			log.Info("No snapshots yet")
			return nil
		}
		now := time.Now()
		for _, snap := range snapshots {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatLogLine(snap, now))
		}
		return nil
	},
}

func formatLogLine(snap meta.Snapshot, now time.Time) string {
	line := fmt.Sprintf("%s %s %s",
		colors.Hash(git.ShortSha(snap.GitHash)),
		colors.ID(snap.ID),
		colors.Faint("(", timeutils.FormatRelative(snap.CreatedAt, now), ")"),
	)
	if snap.Message != "" {
		line += " " + snap.Message
	}
	return line
}
