package logutils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// FormatPrinter is a simple wrapper that implements the Stringer interface by
// printing an arbitrary object with a given format specifier/verb.
type FormatPrinter struct {
	verb string
	item any
}

func (v FormatPrinter) String() string {
	return fmt.Sprintf(v.verb, v.item)
}

func Format(verb string, item any) FormatPrinter {
	return FormatPrinter{verb, item}
}

// Config describes how the CLI logger should behave. A logger is built from it
// exactly once per process and then passed down explicitly.
type Config struct {
	// Verbose enables debug level logging.
	Verbose bool
	// Out is where log entries are written. Defaults to os.Stderr.
	Out io.Writer
}

// NewLogger builds a logger for the given configuration.
func NewLogger(cfg Config) *logrus.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	level := logrus.InfoLevel
	if cfg.Verbose {
		level = logrus.DebugLevel
	}
	return &logrus.Logger{
		Out:       out,
		Formatter: &CLIFormatter{},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
		ExitFunc:  os.Exit,
	}
}

// FormatFor returns the printf format used for a log message of the given
// level. The format has exactly one %s verb for the message.
func FormatFor(level logrus.Level) string {
	if level == logrus.InfoLevel {
		return "[pit] %s"
	}
	return "[pit] " + strings.ToUpper(level.String()) + " - %s"
}

// CLIFormatter formats log entries for humans reading a terminal.
type CLIFormatter struct{}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, FormatFor(entry.Level), entry.Message)
	if entry.Level >= logrus.DebugLevel && len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
		}
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
