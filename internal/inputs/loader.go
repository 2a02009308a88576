package inputs

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a piece of form input, such as the job
// description or the weight overrides.
type Source struct {
	// Name is used in error messages to give more context about the input.
	Name string
	// Value is an inline value provided via configuration or flags.
	Value string
	// File points to a file containing the value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the resolved input value from the provided source. When File is
// set it takes precedence over Value. The returned value is always trimmed. An
// error is returned when the file cannot be read or turns out to be empty.
// Unlike required inputs, an unset source resolves to an empty string so that
// optional inputs (weights) can simply be absent.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "input"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}

		return value, nil
	}

	return strings.TrimSpace(src.Value), nil
}

// LoadRequired behaves like Load but returns an error when the resolved value
// is empty.
func LoadRequired(src Source) (string, error) {
	value, err := Load(src)
	if err != nil {
		return "", err
	}

	if value == "" {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			name = "input"
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
