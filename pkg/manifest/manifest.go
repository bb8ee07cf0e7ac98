// Package manifest reads action metadata files (action.yml), resolves the
// declared inputs against an environment, and generates typed Go accessors
// for them.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"actioncore/pkg/env"
)

// FileNames are the metadata file names looked up by Find, in order.
var FileNames = []string{"action.yml", "action.yaml"}

// Flag is a boolean that also accepts quoted values such as 'true', which
// are common in action metadata.
type Flag bool

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	b, err := env.ParseBool(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = Flag(b)
	return nil
}

// Input is one declared input.
type Input struct {
	Description        string `yaml:"description"`
	DeprecationMessage string `yaml:"deprecationMessage,omitempty"`
	Default            string `yaml:"default,omitempty"`
	Required           Flag   `yaml:"required,omitempty"`
}

// Output is one declared output.
type Output struct {
	Description string `yaml:"description"`
	Value       string `yaml:"value,omitempty"`
}

// Branding controls the marketplace badge.
type Branding struct {
	Icon  string `yaml:"icon,omitempty"`
	Color string `yaml:"color,omitempty"`
}

// Runs describes how the action is executed.
type Runs struct {
	Using      string            `yaml:"using"`
	Main       string            `yaml:"main,omitempty"`
	Pre        string            `yaml:"pre,omitempty"`
	PreIf      string            `yaml:"pre-if,omitempty"`
	Post       string            `yaml:"post,omitempty"`
	PostIf     string            `yaml:"post-if,omitempty"`
	Image      string            `yaml:"image,omitempty"`
	Entrypoint string            `yaml:"entrypoint,omitempty"`
	Args       []string          `yaml:"args,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
}

// Manifest is the content of an action.yml file.
type Manifest struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Author      string            `yaml:"author,omitempty"`
	Branding    *Branding         `yaml:"branding,omitempty"`
	Inputs      map[string]Input  `yaml:"inputs,omitempty"`
	Outputs     map[string]Output `yaml:"outputs,omitempty"`
	Runs        Runs              `yaml:"runs"`
}

// Parse decodes a manifest.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty action manifest")
		}
		return nil, fmt.Errorf("failed to decode action manifest: %w", err)
	}
	return &m, nil
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Find returns the path of the metadata file in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s or %s in %s: %w", FileNames[0], FileNames[1], dir, os.ErrNotExist)
}

// InputNames returns the declared input names, sorted.
func (m *Manifest) InputNames() []string {
	return sortedKeys(m.Inputs)
}

// OutputNames returns the declared output names, sorted.
func (m *Manifest) OutputNames() []string {
	return sortedKeys(m.Outputs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResolveInput returns the value of a declared input: the environment value
// when set and not blank, the default otherwise. A required input without
// either is a *env.MissingInputError.
func ResolveInput(r env.Reader, name string, in Input) (string, error) {
	value, err := env.Input(r, name, env.InputOptions{})
	if err != nil {
		return "", err
	}
	if value == "" {
		value = in.Default
	}
	if value == "" && bool(in.Required) {
		return "", &env.MissingInputError{Name: name}
	}
	return value, nil
}

// ResolveInputs resolves every declared input. Inputs without a value or a
// default are left out.
func (m *Manifest) ResolveInputs(r env.Reader) (map[string]string, error) {
	values := make(map[string]string, len(m.Inputs))
	var errs []error
	for _, name := range m.InputNames() {
		value, err := ResolveInput(r, name, m.Inputs[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if value != "" {
			values[name] = value
		}
	}
	return values, errors.Join(errs...)
}

// Validate checks r against the declared inputs. It returns one warning per
// deprecated input that is set, and an error joining every missing required
// input.
func (m *Manifest) Validate(r env.Reader) (warnings []string, err error) {
	var errs []error
	for _, name := range m.InputNames() {
		in := m.Inputs[name]
		value, resolveErr := ResolveInput(r, name, in)
		if resolveErr != nil {
			errs = append(errs, resolveErr)
			continue
		}
		if in.DeprecationMessage == "" {
			continue
		}
		if _, set := r.LookupEnv(env.InputVariable(name)); set && value != "" {
			warnings = append(warnings, fmt.Sprintf("Input '%s' has been deprecated with message: %s", name, in.DeprecationMessage))
		}
	}
	return warnings, errors.Join(errs...)
}
