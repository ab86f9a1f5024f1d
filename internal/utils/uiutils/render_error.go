package uiutils

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Explanation is a markdown document shown instead of the bare error message
// when an error matches Target.
type Explanation struct {
	Target   error
	Markdown string
}

// RenderError renders err for the terminal. The first explanation whose Target
// matches err (per errors.Is) is rendered with glamour; otherwise the plain
// error message is used.
func RenderError(err error, explanations ...Explanation) string {
	var style string
	if lipgloss.HasDarkBackground() {
		style = styles.DarkStyle
	} else {
		style = styles.LightStyle
	}
	var markdownText string
	for _, e := range explanations {
		if errors.Is(err, e.Target) {
			markdownText = e.Markdown
			break
		}
	}

	if markdownText != "" {
		if out, rerr := glamour.Render(markdownText, style); rerr == nil {
			return out
		}
		// If there's an error, fallback to the plaintext message.
	}
	return fmt.Sprintf("error: %s\n", err)
}
