package stringutils

import "strings"

// SplitLines splits s into lines. A trailing newline does not produce a final
// empty line, and "\r\n" line endings are accepted.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
