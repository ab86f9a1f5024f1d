package main

import (
	"context"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/config"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/colors"
)

func gitCommand() (git.Command, error) {
	command, err := git.ParseCommand(config.Pit.Git.Command)
	if err != nil {
		return nil, err
	}
	if !git.IsCommand(command) {
		return nil, errors.WithStack(git.ErrGitNotFound)
	}
	return command, nil
}

var cachedRepo *git.Repo

// getRepo opens the git repository that contains the working directory (or
// the directory given with -C).
func getRepo(ctx context.Context) (*git.Repo, error) {
	if cachedRepo != nil {
		return cachedRepo, nil
	}
	command, err := gitCommand()
	if err != nil {
		return nil, err
	}
	toplevel, err := git.FindToplevel(ctx, command, rootFlags.Directory, log)
	if err != nil {
		return nil, err
	}
	repo, err := git.OpenRepo(toplevel, command, log)
	if err != nil {
		return nil, errors.WrapIf(err, "failed to open git repo")
	}
	cachedRepo = repo
	return cachedRepo, nil
}

// getStore opens the pit store of repo and warns if git does not ignore it.
func getStore(ctx context.Context, repo *git.Repo) (*store.Store, error) {
	s, err := store.Open(repo.Dir(), log)
	if err != nil {
		return nil, err
	}
	warnIfNotIgnored(ctx, repo)
	return s, nil
}

func warnIfNotIgnored(ctx context.Context, repo *git.Repo) {
	ignored, err := repo.CheckIgnore(ctx, store.DirName)
	if err != nil {
		log.WithError(err).Debug("failed to check whether the pit directory is ignored")
		return
	}
	if !ignored {
		log.Warnf(
			"the %s directory is not ignored by git; add %s to your .gitignore",
			store.DirName, colors.Path(store.DirName+"/"),
		)
	}
}
