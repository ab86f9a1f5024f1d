package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/CarterFendley/pit/internal/config"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/reconcile"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/colors"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which changes would be included in a snapshot",
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
		included, excluded, err := reconcileRepo(ctx, repo, s, config.Pit.Snapshot.IncludeUntracked)
		if err != nil {
			return err
		}
		out, err := formatStatus(included, excluded, colors.Included, colors.Excluded)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// reconcileRepo queries the repository status and splits it according to the
// store's include spec.
func reconcileRepo(
	ctx context.Context,
	repo *git.Repo,
	s *store.Store,
	includeUntracked bool,
) (included, excluded git.StatusMap, err error) {
	spec, err := s.IncludeSpec()
	if err != nil {
		return nil, nil, err
	}
	status, err := repo.Status(ctx)
	if err != nil {
		return nil, nil, err
	}
	included, excluded = reconcile.ReconcileWithSpec(status, spec)
	if !includeUntracked {
		included, excluded = demoteUntracked(included, excluded)
	}
	return included, excluded, nil
}

// demoteUntracked moves untracked files from included to excluded.
func demoteUntracked(included, excluded git.StatusMap) (git.StatusMap, git.StatusMap) {
	untracked := included[git.StatusUntracked]
	if len(untracked) == 0 {
		return included, excluded
	}
	buckets := map[git.StatusCode][]git.Change{}
	for code, changes := range excluded {
		buckets[code] = changes
	}
	buckets[git.StatusUntracked] = append(append([]git.Change{}, excluded[git.StatusUntracked]...), untracked...)
	return included.Without(git.StatusUntracked), git.FromBuckets(buckets)
}

// formatStatus renders the two sections of `pit status`. Empty sections are
// omitted. paint functions color whole lines.
func formatStatus(included, excluded git.StatusMap, paintIncluded, paintExcluded func(a ...any) string) (string, error) {
	var sb strings.Builder
	sections := []struct {
		title  string
		status git.StatusMap
		paint  func(a ...any) string
	}{
		{"Changes included in snapshots:", included, paintIncluded},
		{"Changes not included in snapshots:", excluded, paintExcluded},
	}
	for _, section := range sections {
		if section.status.Len() == 0 {
			continue
		}
		sb.WriteString(section.title)
		sb.WriteByte('\n')
		for _, e := range section.status.Entries() {
			label, err := git.Label(e.Code)
			if err != nil {
				return "", err
			}
			sb.WriteByte('\t')
			sb.WriteString(section.paint(label + ": " + e.Change.String()))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
