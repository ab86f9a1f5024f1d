package colors

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LightBackgroundEnv overrides terminal background detection when set to a
// boolean-ish value.
const LightBackgroundEnv = "PIT_HAS_LIGHT_BG"

// ParseLightBackground interprets a LightBackgroundEnv value. ok is false when
// the value does not decide either way.
func ParseLightBackground(value string) (light bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y", "on":
		return true, true
	case "false", "0", "no", "n", "off":
		return false, true
	}
	return false, false
}

// ApplyBackgroundFromEnv forces lipgloss' background mode from
// LightBackgroundEnv. Without the variable lipgloss keeps guessing from the
// terminal (COLORFGBG), which is not reliable everywhere.
func ApplyBackgroundFromEnv() {
	if light, ok := ParseLightBackground(os.Getenv(LightBackgroundEnv)); ok {
		lipgloss.SetHasDarkBackground(!light)
	}
}
