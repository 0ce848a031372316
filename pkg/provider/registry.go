package provider

import (
	"slices"
	"sync"

	"github.com/taggedzi/creddedupe/pkg/errors"
)

// Registry holds provider plugins keyed by ID. It preserves registration
// order for enumeration and is safe for concurrent read access once
// registration is complete.
type Registry struct {
	mu      sync.RWMutex
	plugins map[ID]Plugin
	order   []ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[ID]Plugin),
	}
}

// NewDefaultRegistry creates a registry with every built-in provider plugin
// registered, in a fixed order with Proton Pass (the baseline format) first.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{
		NewProtonPass(),
		NewLastPass(),
		NewBitwarden(),
		NewDashlane(),
		NewRoboForm(),
		NewNordPass(),
		NewApplePasswords(),
		NewKaspersky(),
		NewFirefox(),
		NewChromium(),
	} {
		// Built-in IDs are distinct, so registration cannot fail.
		_ = r.Register(p)
	}
	return r
}

// Register adds a plugin under its declared ID. It fails with a
// DuplicateProviderError if the ID is already registered.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if _, exists := r.plugins[id]; exists {
		return errors.NewDuplicateProviderError(id.String())
	}
	r.plugins[id] = p
	r.order = append(r.order, id)
	return nil
}

// Get returns the plugin registered under id, or an UnknownProviderError.
func (r *Registry) Get(id ID) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[id]
	if !ok {
		return nil, errors.NewUnknownProviderError(id.String())
	}
	return p, nil
}

// List returns all registered IDs in registration order.
func (r *Registry) List() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Plugins returns all registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plugins[id])
	}
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
