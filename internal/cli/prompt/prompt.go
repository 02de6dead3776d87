// Package prompt asks fectl users to confirm destructive commands.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user interrupts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err means the user interrupted a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, promptui.ErrInterrupt)
}

// Runner runs one prompt. Tests replace it.
type Runner func(p *promptui.Prompt) (string, error)

// Run is the Runner used by Confirm and ConfirmWord.
var Run Runner = func(p *promptui.Prompt) (string, error) { return p.Run() }

// Confirm asks a yes/no question; anything but y/yes is a no.
func Confirm(label string) (bool, error) {
	result, err := Run(&promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	})
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return false, ErrAborted
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case err != nil:
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(result))
	return answer == "y" || answer == "yes", nil
}

// ConfirmWithForce returns true without asking when force is set.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}

// ConfirmWord requires the user to type word, for operations that destroy
// data irrecoverably.
func ConfirmWord(label, word string) (bool, error) {
	result, err := Run(&promptui.Prompt{
		Label: fmt.Sprintf("%s (type '%s' to confirm)", label, word),
		Validate: func(input string) error {
			if input != word {
				return fmt.Errorf("type '%s' to confirm", word)
			}
			return nil
		},
	})
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return false, ErrAborted
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case err != nil:
		return false, err
	}
	return result == word, nil
}
