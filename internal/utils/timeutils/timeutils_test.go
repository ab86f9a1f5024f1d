package timeutils_test

import (
	"testing"
	"time"

	"github.com/CarterFendley/pit/internal/utils/timeutils"
	"github.com/stretchr/testify/require"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "3 minutes ago", timeutils.FormatRelative(now.Add(-3*time.Minute), now))
	require.Equal(t, "2 hours ago", timeutils.FormatRelative(now.Add(-2*time.Hour), now))
}

func TestFormatLocal(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := timeutils.FormatLocal(ts)
	require.Equal(t, ts.Local().Format("2 January 2006 3:04:05 PM MST"), got)
}
