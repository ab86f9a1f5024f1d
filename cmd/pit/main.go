package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/config"
	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/store"
	"github.com/CarterFendley/pit/internal/utils/colors"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/CarterFendley/pit/internal/utils/logutils"
	"github.com/CarterFendley/pit/internal/utils/uiutils"
	"github.com/kr/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Verbose   bool
	Directory string
}

// log is configured in the root command's PersistentPreRunE and passed down
// explicitly from there.
var log logrus.FieldLogger = logutils.NewLogger(logutils.Config{})

var RootCmd = &cobra.Command{
	Use:   "pit",
	Short: "Lightweight tooling for tracking experiment state in git based repositories",

	// Don't automatically print errors or usage information (we handle that ourselves).
	// Cobra still prints usage if you return cmd.Usage() from RunE.
	SilenceErrors: true,
	SilenceUsage:  true,

	// Don't show "completion" command in help menu
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	// Run setup before invoking any child commands.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logutils.NewLogger(logutils.Config{
			Verbose: rootFlags.Verbose,
			Out:     os.Stderr,
		})
		if rootFlags.Verbose {
			log.WithField("pit_version", config.Version).Debug("enabled verbose logging")
		}
		colors.ApplyBackgroundFromEnv()

		var configDirs []string
		toplevel, err := git.FindToplevel(cmd.Context(), git.DefaultCommand, rootFlags.Directory, log)
		// If we weren't able to find the Git repo, that probably just means the
		// command isn't being run from inside a repo. That's fine, we just
		// don't need to bother reading repo-local config.
		if err != nil {
			log.WithError(err).Debug("unable to locate Git repo (probably not inside a repo)")
		} else {
			configDirs = append(configDirs, store.Locate(toplevel))
		}

		// Note: this only returns an error if config exists and it can't be
		// read/parsed. It doesn't return an error if no config file exists.
		didLoadConfig, err := config.Load(configDirs)
		if err != nil {
			return errors.WrapIf(err, "failed to load configuration")
		}
		if didLoadConfig {
			log.Debug("loaded configuration")
		} else {
			log.Debug("no configuration found")
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(
		&rootFlags.Verbose, "verbose", "v", false,
		"enable verbose logging",
	)
	RootCmd.PersistentFlags().StringVarP(
		&rootFlags.Directory, "repo", "C", "",
		"directory to use for git repository",
	)
	RootCmd.AddCommand(
		initCmd,
		statusCmd,
		snapshotCmd,
		logCmd,
		showCmd,
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(handleError(err))
	}
}

// handleError reports err to the user and returns the process exit code.
func handleError(err error) int {
	if exitSilently, ok := errutils.As[uiutils.ErrExitSilently](err); ok {
		return exitSilently.ExitCode
	}
	if errors.Is(err, uiutils.ErrUserAborted) {
		_, _ = fmt.Fprintln(os.Stderr, colors.Faint("Aborted."))
		return exitUserAborted
	}

	_, _ = fmt.Fprint(os.Stderr, renderError(err))
	// In verbose mode, show more detailed information about the error
	// (including the stack trace).
	if rootFlags.Verbose {
		stackTrace := fmt.Sprintf("%+v", err)
		_, _ = fmt.Fprintln(os.Stderr, colors.Faint(text.Indent(stackTrace, "\t")))
	}
	return exitCode(err)
}
