package uiutils

import (
	"os"

	"emperror.dev/errors"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/mattn/go-isatty"
)

// ErrNotATerminal is returned by Confirm when there is no terminal to prompt on.
var ErrNotATerminal = errors.Sentinel("cannot ask for confirmation: not running in a terminal")

const (
	confirmYes = "Yes"
	confirmNo  = "No"
)

// Confirm asks the user a yes/no question. Declining (or cancelling the
// prompt) returns ErrUserAborted.
func Confirm(question string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.WithStack(ErrNotATerminal)
	}
	sp := selection.New(question, []string{confirmYes, confirmNo})
	sp.Filter = nil

	choice, err := sp.RunPrompt()
	if err != nil {
		// promptkit reports ctrl+c as an error; treat it as a "no".
		return errors.Combine(errors.WithStack(ErrUserAborted), err)
	}
	if choice != confirmYes {
		return errors.WithStack(ErrUserAborted)
	}
	return nil
}
