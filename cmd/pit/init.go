package main

import (
	"context"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/spf13/cobra"
)

var initFlags struct {
	NoIgnore bool
}

const ignoreEntry = "\n# Pit repo directory\n" + store.DirName + "/"

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create an empty pit store in the toplevel directory of a git repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir := rootFlags.Directory
		if len(args) == 1 {
			dir = args[0]
			if rootFlags.Directory != "" && !filepath.IsAbs(dir) {
				dir = filepath.Join(rootFlags.Directory, dir)
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return &initError{errors.Errorf("path specified is not a directory: %s", dir)}
			}
		}

		command, err := gitCommand()
		if err != nil {
			return err
		}
		toplevel, err := git.FindToplevel(ctx, command, dir, log)
		if err != nil {
			return err
		}
		repo, err := git.OpenRepo(toplevel, command, log)
		if err != nil {
			return &initError{err}
		}

		s, err := store.Create(repo.Dir(), log)
		if err != nil {
			if errors.Is(err, store.ErrStoreExists) {
				return err
			}
			return &initError{err}
		}
		log.Infof("Initialized empty Pit repository in %s", s.Dir())

		if !initFlags.NoIgnore {
			if err := addToGitignore(ctx, repo); err != nil {
				return &initError{err}
			}
		}
		warnIfNotIgnored(ctx, repo)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(
		&initFlags.NoIgnore, "no-ignore", false,
		"do not add the .pit directory to .gitignore",
	)
}

// addToGitignore appends the store directory to the repository's .gitignore
// unless git already ignores it.
func addToGitignore(ctx context.Context, repo *git.Repo) error {
	ignored, err := repo.CheckIgnore(ctx, store.DirName)
	if err != nil {
		return err
	}
	if ignored {
		log.Debug("pit directory is already ignored by git")
		return nil
	}
	ignorePath := filepath.Join(repo.Dir(), ".gitignore")
	log.Debugf("adding %s to %s", store.DirName, ignorePath)
	f, err := os.OpenFile(ignorePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.WrapIf(err, "failed to open .gitignore")
	}
	if _, err := f.WriteString(ignoreEntry); err != nil {
		_ = f.Close()
		return errors.WrapIf(err, "failed to update .gitignore")
	}
	return errors.WrapIf(f.Close(), "failed to update .gitignore")
}
