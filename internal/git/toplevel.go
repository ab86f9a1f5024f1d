package git

import (
	"context"
	"os/exec"
	"strings"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/utils/dirutils"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/sirupsen/logrus"
)

// IsCommand reports whether the git executable can be resolved.
func IsCommand(command Command) bool {
	_, err := exec.LookPath(command.orDefault()[0])
	return err == nil
}

// IsInsideWorkTree reports whether the current working directory is inside a
// git working tree.
func IsInsideWorkTree(ctx context.Context, command Command, log logrus.FieldLogger) bool {
	out, err := run(ctx, command, "", log, &RunOpts{
		Args: []string{"rev-parse", "--is-inside-work-tree"},
	})
	if err != nil {
		return false
	}
	return out.ExitCode == 0 && strings.TrimSpace(string(out.Stdout)) == "true"
}

// FindToplevel returns the absolute path of the toplevel directory of the
// working tree that contains dir. If dir is empty, the current working
// directory is used. Otherwise the process temporarily switches into dir.
func FindToplevel(ctx context.Context, command Command, dir string, log logrus.FieldLogger) (string, error) {
	if dir == "" {
		return showToplevel(ctx, command, log)
	}
	var toplevel string
	err := dirutils.WithDir(dir, func() error {
		var err error
		toplevel, err = showToplevel(ctx, command, log)
		return err
	})
	return toplevel, err
}

func showToplevel(ctx context.Context, command Command, log logrus.FieldLogger) (string, error) {
	out, err := run(ctx, command, "", log, &RunOpts{
		Args:      []string{"rev-parse", "--show-toplevel"},
		ExitError: true,
	})
	if err != nil {
		if cmdErr, ok := errutils.As[*CommandError](err); ok {
			log.WithField("stderr", cmdErr.Stderr).Debug("failed to determine repository toplevel")
			return "", errors.WithStack(ErrNotARepository)
		}
		return "", err
	}
	return strings.TrimSpace(string(out.Stdout)), nil
}

// CheckIgnore reports whether path is ignored by git.
func (r *Repo) CheckIgnore(ctx context.Context, path string) (bool, error) {
	out, err := r.Run(ctx, &RunOpts{Args: []string{"check-ignore", "-q", "--", path}})
	if err != nil {
		return false, err
	}
	switch out.ExitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, &CommandError{
			Args:     []string{"check-ignore", "-q", "--", path},
			ExitCode: out.ExitCode,
			Stderr:   strings.TrimSpace(string(out.Stderr)),
		}
	}
}
