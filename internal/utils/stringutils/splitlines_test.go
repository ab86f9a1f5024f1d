package stringutils_test

import (
	"testing"

	"github.com/CarterFendley/pit/internal/utils/stringutils"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	input := `line1
line2

line4
`
	expected := []string{"line1", "line2", "", "line4"}

	require.Equal(t, expected, stringutils.SplitLines(input))

	input = "crlf\r\nline\r\n"
	expected = []string{"crlf", "line"}

	require.Equal(t, expected, stringutils.SplitLines(input))

	input = ""
	expected = []string(nil)

	require.Equal(t, expected, stringutils.SplitLines(input))
}
