package timeutils

import (
	"time"

	"github.com/dustin/go-humanize"
)

const displayLayout = "2 January 2006 3:04:05 PM MST"

// FormatLocal renders t in the local timezone in a fixed, readable layout.
func FormatLocal(t time.Time) string {
	return t.Local().Format(displayLayout)
}

// FormatRelative renders t relative to now ("3 minutes ago").
func FormatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
