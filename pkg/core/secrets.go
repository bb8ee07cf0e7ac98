package core

import (
	"sort"
	"strings"
	"sync"

	"actioncore/pkg/command"
)

// Redacted replaces secrets in diagnostics produced by this toolkit.
const Redacted = "***"

// SecretRegistry is the append-only set of values registered for masking.
type SecretRegistry struct {
	mu      sync.RWMutex
	values  []string
	present map[string]struct{}
}

// NewSecretRegistry creates an empty registry.
func NewSecretRegistry() *SecretRegistry {
	return &SecretRegistry{present: make(map[string]struct{})}
}

// Add registers value. It reports whether value was not registered before.
func (r *SecretRegistry) Add(value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.present[value]; ok {
		return false
	}
	r.present[value] = struct{}{}
	r.values = append(r.values, value)
	return true
}

// Contains reports whether value is registered.
func (r *SecretRegistry) Contains(value string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.present[value]
	return ok
}

// Len returns the number of registered values.
func (r *SecretRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Values returns the registered values in registration order.
func (r *SecretRegistry) Values() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.values...)
}

// Mask replaces every registered value in s with Redacted. Longer values are
// replaced first so a secret that contains another is hidden completely.
func (r *SecretRegistry) Mask(s string) string {
	values := r.Values()
	if len(values) == 0 || s == "" {
		return s
	}
	sort.SliceStable(values, func(i, j int) bool {
		return len(values[i]) > len(values[j])
	})
	for _, v := range values {
		s = strings.ReplaceAll(s, v, Redacted)
	}
	return s
}

// SetSecret registers value for masking and tells the runner with an add-mask
// command. Masking is not retroactive: register a secret before it is first
// written anywhere. Empty values are ignored.
func (a *Action) SetSecret(value string) {
	if value == "" {
		return
	}
	a.secrets.Add(value)
	a.Issue(command.New("add-mask", value))
}
