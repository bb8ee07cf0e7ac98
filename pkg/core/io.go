package core

import (
	"fmt"
	"os"

	"actioncore/pkg/env"
	"actioncore/pkg/filecmd"
)

type (
	// InputOptions controls input resolution. See env.InputOptions.
	InputOptions = env.InputOptions
	// MissingInputError reports a required input that is unset or blank.
	MissingInputError = env.MissingInputError
)

// ErrMissingRequiredInput matches every *MissingInputError.
var ErrMissingRequiredInput = env.ErrMissingRequiredInput

// StatePrefix is prepended to saved state names when the runner passes them
// to the post step.
const StatePrefix = "STATE_"

// Getenv returns an environment variable and whether it is set.
func (a *Action) Getenv(name string) (string, bool) {
	return a.env.LookupEnv(name)
}

// GetInput returns the value of an input, or "" when it is unset.
func (a *Action) GetInput(name string, opts InputOptions) (string, error) {
	return env.Input(a.env, name, opts)
}

// LookupInput returns the value of an input and whether it is set at all.
func (a *Action) LookupInput(name string, opts InputOptions) (string, bool, error) {
	return env.LookupInput(a.env, name, opts)
}

// GetBoolInput returns an input parsed as a boolean.
func (a *Action) GetBoolInput(name string, opts InputOptions) (bool, error) {
	return env.BoolInput(a.env, name, opts)
}

// GetIntInput returns an input parsed as an integer.
func (a *Action) GetIntInput(name string, opts InputOptions) (int, error) {
	return env.IntInput(a.env, name, opts)
}

// GetMultilineInput returns the non-empty lines of an input.
func (a *Action) GetMultilineInput(name string, opts InputOptions) ([]string, error) {
	return env.MultilineInput(a.env, name, opts)
}

// SetOutput sets a step output.
func (a *Action) SetOutput(name, value string) error {
	if err := a.channels[filecmd.Output].Send(name, value); err != nil {
		return fmt.Errorf("failed to set output %s: %w", name, err)
	}
	return nil
}

// ExportVariable sets an environment variable for this process and for every
// later step of the job.
func (a *Action) ExportVariable(name, value string) error {
	if err := a.env.Setenv(name, value); err != nil {
		return err
	}
	if err := a.channels[filecmd.Env].Send(name, value); err != nil {
		return fmt.Errorf("failed to export %s: %w", name, err)
	}
	return nil
}

// AddPath prepends path to PATH for this process and for every later step of
// the job.
func (a *Action) AddPath(path string) error {
	current, _ := a.env.LookupEnv("PATH")
	updated := path
	if current != "" {
		updated = path + string(os.PathListSeparator) + current
	}
	if err := a.env.Setenv("PATH", updated); err != nil {
		return err
	}
	if err := a.channels[filecmd.Path].Send("", path); err != nil {
		return fmt.Errorf("failed to add path %s: %w", path, err)
	}
	return nil
}

// SaveState stores a value for this action's post step.
func (a *Action) SaveState(name, value string) error {
	if err := a.channels[filecmd.State].Send(name, value); err != nil {
		return fmt.Errorf("failed to save state %s: %w", name, err)
	}
	return nil
}

// GetState returns a value saved by this action's main step, or "".
func (a *Action) GetState(name string) string {
	return env.Get(a.env, StatePrefix+name)
}

// SetFailed writes an error annotation and makes ExitCode report failure.
// The process keeps running; call Exit, or use Fail, to stop it.
func (a *Action) SetFailed(message string) {
	a.mu.Lock()
	a.exitCode = ExitFailure
	a.mu.Unlock()
	a.Error(message, nil)
}

// ExitCode returns ExitFailure after SetFailed and ExitSuccess otherwise.
func (a *Action) ExitCode() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exitCode
}

// Exit terminates the process with ExitCode.
func (a *Action) Exit() {
	a.exit(a.ExitCode())
}

// Fail marks the action failed with err's message and exits.
func (a *Action) Fail(err error) {
	a.SetFailed(err.Error())
	a.Exit()
}
