package e2e_tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"emperror.dev/errors"
	"github.com/kr/text"
	"github.com/stretchr/testify/require"
)

var pitCmdPath string

func init() {
	// Never prompt, and never pick up the developer's own configuration.
	for k, v := range map[string]string{
		"PIT_NO_CONFIRM": "1",
		"PIT_HOME":       "",
		"PIT_GIT":        "",
		"NO_COLOR":       "1",
	} {
		if err := os.Setenv(k, v); err != nil {
			panic(err)
		}
	}

	cmd := exec.Command("go", "build", "../cmd/pit")
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic(err)
	}
	var err error
	pitCmdPath, err = filepath.Abs("./pit")
	if err != nil {
		panic(err)
	}
}

type PitOutput struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func Cmd(t *testing.T, exe string, args ...string) PitOutput {
	t.Helper()
	cmd := exec.Command(exe, args...)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitError *exec.ExitError
	if err != nil && !errors.As(err, &exitError) {
		t.Fatal(err)
	}

	output := PitOutput{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	t.Logf("Running pit\n"+
		"args: %v\n"+
		"exit code: %v\n"+
		"stdout:\n"+
		"%s"+
		"stderr:\n"+
		"%s",
		args,
		cmd.ProcessState.ExitCode(),
		text.Indent(stdout.String(), "  "),
		text.Indent(stderr.String(), "  "),
	)
	return output
}

func Pit(t *testing.T, args ...string) PitOutput {
	t.Helper()
	args = append([]string{"--verbose"}, args...)
	return Cmd(t, pitCmdPath, args...)
}

func RequirePit(t *testing.T, args ...string) PitOutput {
	t.Helper()
	output := Pit(t, args...)
	require.Equal(t, 0, output.ExitCode, "pit %s: exited with %v", args, output.ExitCode)
	return output
}

// RequirePitExit runs pit and checks its exit code.
func RequirePitExit(t *testing.T, code int, args ...string) PitOutput {
	t.Helper()
	output := Pit(t, args...)
	require.Equal(t, code, output.ExitCode, "pit %s: exited with %v", args, output.ExitCode)
	return output
}

func Chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
}
