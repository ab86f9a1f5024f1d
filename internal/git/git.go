package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/utils/executils"
	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

// Command is the git executable followed by any leading arguments that should
// be passed to every invocation (e.g., `git -c core.quotePath=true`).
type Command []string

// DefaultCommand runs whatever `git` resolves to on $PATH.
var DefaultCommand = Command{"git"}

// ParseCommand splits a command line using shell syntax.
// An empty string yields DefaultCommand.
func ParseCommand(s string) (Command, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultCommand, nil
	}
	args, err := shlex.Split(s)
	if err != nil {
		return nil, errors.WrapIff(err, "invalid git command %q", s)
	}
	if len(args) == 0 {
		return DefaultCommand, nil
	}
	return Command(args), nil
}

func (c Command) orDefault() Command {
	if len(c) == 0 {
		return DefaultCommand
	}
	return c
}

func (c Command) build(ctx context.Context, dir string, args []string) *exec.Cmd {
	c = c.orDefault()
	full := append(append([]string{}, c[1:]...), args...)
	cmd := exec.CommandContext(ctx, c[0], full...)
	cmd.Dir = dir
	return cmd
}

type Repo struct {
	repoDir string
	command Command
	log     logrus.FieldLogger
}

// OpenRepo returns a Repo rooted at repoDir (which should be the toplevel of
// the working tree). All git invocations are logged to log.
func OpenRepo(repoDir string, command Command, log logrus.FieldLogger) (*Repo, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	info, err := os.Stat(repoDir)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to open repository %q", repoDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("failed to open repository %q: not a directory", repoDir)
	}
	r := &Repo{
		repoDir,
		command.orDefault(),
		log.WithField("repo", filepath.Base(repoDir)),
	}
	return r, nil
}

func (r *Repo) Dir() string {
	return r.repoDir
}

func (r *Repo) Command() Command {
	return r.command
}

// Git runs git with the given arguments and returns its trimmed stdout.
// A non-zero exit status is returned as a *CommandError.
func (r *Repo) Git(ctx context.Context, args ...string) (string, error) {
	out, err := r.Run(ctx, &RunOpts{Args: args, ExitError: true})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out.Stdout)), nil
}

// GitStdin is like Git but feeds stdin to the process.
func (r *Repo) GitStdin(ctx context.Context, args []string, stdin io.Reader) (string, error) {
	out, err := r.Run(ctx, &RunOpts{Args: args, Stdin: stdin, ExitError: true})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out.Stdout)), nil
}

type RunOpts struct {
	Args  []string
	Env   []string
	Stdin io.Reader
	// If true, return a *CommandError if the command exited with a non-zero
	// exit code.
	ExitError bool
}

type Output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (o Output) Lines() []string {
	s := strings.TrimSpace(string(o.Stdout))
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (r *Repo) Run(ctx context.Context, opts *RunOpts) (*Output, error) {
	return run(ctx, r.command, r.repoDir, r.log, opts)
}

func run(
	ctx context.Context,
	command Command,
	dir string,
	log logrus.FieldLogger,
	opts *RunOpts,
) (*Output, error) {
	startTime := time.Now()
	cmd := command.build(ctx, dir, opts.Args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = opts.Stdin
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	err := cmd.Run()
	log = log.WithField("duration", time.Since(startTime))

	var exitError *exec.ExitError
	if err != nil && !errors.As(err, &exitError) {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, errors.WithStack(ErrGitNotFound)
		}
		return nil, errors.WrapIff(err, "git %s", executils.FormatCommandLine(opts.Args))
	}
	exitCode := cmd.ProcessState.ExitCode()
	if exitCode != 0 {
		log.Debugf("git %s failed (exit %d): %s",
			executils.FormatCommandLine(opts.Args), exitCode, strings.TrimSpace(stderr.String()))
		if opts.ExitError {
			return nil, &CommandError{
				Args:     opts.Args,
				ExitCode: exitCode,
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
	} else {
		log.Debugf("git %s", executils.FormatCommandLine(opts.Args))
	}
	return &Output{
		ExitCode: exitCode,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
