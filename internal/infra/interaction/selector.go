// Where: cli/internal/infra/interaction/selector.go
// What: Interactive input helpers using the huh library.
// Why: Ask for the portal account when it was not given on the command line.
package interaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

var errEmptyInput = errors.New("value must not be empty")

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return errEmptyInput
	}
	return nil
}

var runInputPrompt = func(title, placeholder string, input *string) error {
	field := huh.NewInput().
		Title(title).
		Validate(requireValue).
		Value(input)
	if placeholder != "" {
		field.Placeholder(placeholder)
	}
	return field.Run()
}

var runPasswordPrompt = func(title string, input *string) error {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(requireValue).
		Value(input).
		Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Input(title, placeholder string) (string, error) {
	var input string
	if err := runInputPrompt(title, placeholder, &input); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func (p HuhPrompter) Password(title string) (string, error) {
	var input string
	if err := runPasswordPrompt(title, &input); err != nil {
		return "", fmt.Errorf("prompt password: %w", err)
	}
	return input, nil
}
