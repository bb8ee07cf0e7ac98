package env

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// InputPrefix is prepended to every input name to form its variable name.
const InputPrefix = "INPUT_"

// ErrMissingRequiredInput is matched by every *MissingInputError.
var ErrMissingRequiredInput = errors.New("input required and not supplied")

// MissingInputError reports a required input that is unset or blank.
type MissingInputError struct {
	Name string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input required and not supplied: %s", e.Name)
}

func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingRequiredInput
}

// ParseError reports an input whose value does not parse as the requested type.
type ParseError struct {
	Name  string
	Value string
	Type  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input %s: invalid %s value %q: %v", e.Name, e.Type, e.Value, e.Err)
	}
	return fmt.Sprintf("input %s: invalid %s value %q", e.Name, e.Type, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InputOptions controls how an input is resolved. The zero value reads an
// optional input and trims surrounding whitespace.
type InputOptions struct {
	// Required makes an unset or blank input an error.
	Required bool
	// PreserveWhitespace keeps leading and trailing whitespace.
	PreserveWhitespace bool
}

// InputVariable returns the environment variable name of an input.
// The name is uppercased and spaces become underscores. An existing INPUT_
// prefix is not doubled.
func InputVariable(name string) string {
	name = strings.TrimPrefix(name, InputPrefix)
	return InputPrefix + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// LookupInput resolves an input. ok reports whether the variable is set at
// all, so an empty value and an absent one stay distinguishable.
func LookupInput(r Reader, name string, opts InputOptions) (value string, ok bool, err error) {
	value, ok = r.LookupEnv(InputVariable(name))
	if ok && !opts.PreserveWhitespace {
		value = strings.TrimSpace(value)
	}
	if opts.Required && value == "" {
		return "", ok, &MissingInputError{Name: name}
	}
	return value, ok, nil
}

// Input resolves an input and returns "" when it is unset.
func Input(r Reader, name string, opts InputOptions) (string, error) {
	value, _, err := LookupInput(r, name, opts)
	return value, err
}

// BoolInput resolves an input as a boolean. Accepted values, case
// insensitive: yes, true, t, no, false, f. An unset or empty optional input is
// false.
func BoolInput(r Reader, name string, opts InputOptions) (bool, error) {
	value, err := Input(r, name, opts)
	if err != nil || value == "" {
		return false, err
	}
	b, err := ParseBool(value)
	if err != nil {
		return false, &ParseError{Name: name, Value: value, Type: "boolean"}
	}
	return b, nil
}

// ParseBool parses yes/true/t and no/false/f, ignoring case.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "true", "t":
		return true, nil
	case "no", "false", "f":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", value)
}

// IntInput resolves an input as a base 10 integer. An unset or empty optional
// input is 0.
func IntInput(r Reader, name string, opts InputOptions) (int, error) {
	value, err := Input(r, name, opts)
	if err != nil || value == "" {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParseError{Name: name, Value: value, Type: "integer", Err: err}
	}
	return n, nil
}

// MultilineInput resolves an input and splits it into lines. Empty lines are
// dropped; each line is trimmed unless PreserveWhitespace is set.
func MultilineInput(r Reader, name string, opts InputOptions) ([]string, error) {
	value, err := Input(r, name, opts)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !opts.PreserveWhitespace {
			line = strings.TrimSpace(line)
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// SetInput stores an input value the way the runner does. Useful for tests
// and local runs.
func SetInput(w Writer, name, value string) error {
	return w.Setenv(InputVariable(name), value)
}
