package main

import (
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/uiutils"
)

const gitNotFound = `# ERROR: git not found

` + "`pit`" + ` records snapshots with ` + "`git`" + `, but no ` + "`git`" + ` executable could be found.
Please make sure git is installed and on your ` + "`$PATH`" + `, or point ` + "`pit`" + ` to it with the
` + "`PIT_GIT`" + ` environment variable.
`

const notARepository = `# ERROR: Not a git repository

` + "`pit`" + ` only works inside git repositories, and neither the current directory nor
any of its parents is one. Run ` + "`pit`" + ` from inside your repository, or pass its path with ` + "`-C`" + `.
`

const storeNotFound = `# ERROR: Pit is not initialized

This repository has no ` + "`.pit`" + ` directory next to its ` + "`.git`" + ` directory.
Run ` + "`pit init`" + ` to create one.
`

const storeExists = `# ERROR: Pit is already initialized

This repository already has a ` + "`.pit`" + ` directory, and ` + "`pit`" + ` does not support reinitialization.
`

func renderError(err error) string {
	return uiutils.RenderError(err,
		uiutils.Explanation{Target: git.ErrGitNotFound, Markdown: gitNotFound},
		uiutils.Explanation{Target: git.ErrNotARepository, Markdown: notARepository},
		uiutils.Explanation{Target: store.ErrStoreNotFound, Markdown: storeNotFound},
		uiutils.Explanation{Target: store.ErrStoreExists, Markdown: storeExists},
	)
}
