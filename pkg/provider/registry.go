package provider

import (
	"fmt"
	"sync"

	"github.com/smilemakc/checkflow/pkg/models"
)

// Registry is a thread-safe provider lookup table keyed by type name.
//
// Grounded on Registry (backend/pkg/executor/registry.go):
// same RWMutex-guarded map, Register/Get/Has/List/Unregister shape.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds or replaces the provider for its own Name().
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("%w: nil provider", models.ErrConfigInvalid)
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("%w: provider name cannot be empty", models.ErrConfigInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
	return nil
}

// Get retrieves a provider by type name.
func (r *Registry) Get(typeName string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProviderNotFound, typeName)
	}
	return p, nil
}

// Has reports whether a provider is registered for typeName.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[typeName]
	return ok
}

// List returns every registered type name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}

// Unregister removes a provider by type name.
func (r *Registry) Unregister(typeName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[typeName]; !ok {
		return fmt.Errorf("%w: %s", models.ErrProviderNotFound, typeName)
	}
	delete(r.providers, typeName)
	return nil
}
