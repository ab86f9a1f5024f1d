package executils

import (
	"github.com/kballard/go-shellquote"
)

// FormatCommandLine formats a command line for display.
// This is meant to prevent confusing output when a command line contains
// arguments with spaces or other special characters. The result can be pasted
// into a POSIX shell.
func FormatCommandLine(args []string) string {
	return shellquote.Join(args...)
}
