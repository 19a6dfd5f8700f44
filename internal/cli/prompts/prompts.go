package prompts

import (
	"github.com/charmbracelet/huh"
)

// Text prompts for text input. An empty answer keeps defaultVal.
// validate may be nil.
func Text(title, description, defaultVal string, validate func(string) error) (string, error) {
	value := defaultVal

	input := huh.NewInput().
		Title(title).
		Value(&value)
	if description != "" {
		input = input.Description(description)
	}
	if validate != nil {
		input = input.Validate(func(s string) error {
			if s == "" {
				return nil
			}
			return validate(s)
		})
	}

	if err := input.Run(); err != nil {
		return defaultVal, err
	}

	if value == "" {
		return defaultVal, nil
	}
	return value, nil
}

// Confirm prompts for yes/no confirmation
func Confirm(title string, defaultVal bool) (bool, error) {
	value := defaultVal

	err := huh.NewConfirm().
		Title(title).
		Value(&value).
		Run()

	if err != nil {
		return defaultVal, err
	}

	return value, nil
}

// Select prompts user to select from a list of options
func Select(title string, options []string, defaultVal string) (string, error) {
	var value string

	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt, opt)
		if opt == defaultVal {
			value = opt
		}
	}

	// If no match found, use first option
	if value == "" && len(options) > 0 {
		value = options[0]
	}

	err := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value).
		Run()

	if err != nil {
		return defaultVal, err
	}

	return value, nil
}
