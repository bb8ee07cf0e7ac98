// Package env reads and writes the ambient name/value state an action runs in.
//
// The runner passes inputs, channel file paths, and run metadata through
// environment variables. Reader and Writer abstract that state so the rest of
// the toolkit can run against the real process environment (OS) or an isolated
// in-memory copy (Map).
package env

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Reader looks up environment variables. Lookup is exact-match on the name.
type Reader interface {
	LookupEnv(key string) (string, bool)
}

// Writer sets environment variables.
type Writer interface {
	Setenv(key, value string) error
}

// Env reads and writes environment variables.
type Env interface {
	Reader
	Writer
}

// OS is the environment of the current process.
type OS struct{}

var _ Env = OS{}

func (OS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OS) Setenv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Map is an in-memory environment safe for concurrent use.
type Map struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Env = (*Map)(nil)

// NewMap creates a Map holding a copy of values.
func NewMap(values map[string]string) *Map {
	m := &Map{values: make(map[string]string, len(values))}
	maps.Copy(m.values, values)
	return m
}

// FromOS snapshots the current process environment.
func FromOS() *Map {
	m := NewMap(nil)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			m.values[k] = v
		}
	}
	return m
}

// ParseYAML reads a flat YAML mapping of names to values.
func ParseYAML(r io.Reader) (*Map, error) {
	var values map[string]string
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return NewMap(nil), nil
		}
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return NewMap(values), nil
}

// LoadYAML reads a YAML environment file. See ParseYAML.
func LoadYAML(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open environment file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseYAML(f)
}

func (m *Map) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Unsetenv removes key.
func (m *Map) Unsetenv(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Keys returns the sorted variable names.
func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns the variables in "key=value" form, sorted by key.
func (m *Map) Environ() []string {
	keys := m.Keys()
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m.values[k])
	}
	return out
}

// Get returns the value of key, or "" when it is unset.
func Get(r Reader, key string) string {
	v, _ := r.LookupEnv(key)
	return v
}
