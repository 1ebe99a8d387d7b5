package module

import (
	"fmt"
	"sort"
	"sync"

	"phasegen/internal/logging"
	"phasegen/internal/pool"
)

// Factory constructs a module instance: it resolves the instance's input
// tags against the pool, declares its output slots, and returns the bound
// module or a binding error.
type Factory func(p *pool.Pool, params *Params) (Module, error)

// Registry maps module type names to factories. It is thread-safe and
// supports registration at init time or runtime.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a type name.
// Returns an error if the name is empty, the factory nil, or the type taken.
func (r *Registry) Register(typ string, factory Factory) error {
	if typ == "" {
		return ErrTypeEmpty
	}
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrFactoryNil, typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typ]; exists {
		return fmt.Errorf("%w: %s", ErrTypeAlreadyRegistered, typ)
	}
	r.factories[typ] = factory

	logging.ModulesDebug("registered module type: %s", typ)
	return nil
}

// MustRegister registers a factory and panics on error.
// Use this for static registration at init time.
func (r *Registry) MustRegister(typ string, factory Factory) {
	if err := r.Register(typ, factory); err != nil {
		panic(fmt.Sprintf("failed to register module type %s: %v", typ, err))
	}
}

// Has reports whether a type name is registered.
func (r *Registry) Has(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typ]
	return ok
}

// Types returns all registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for typ := range r.factories {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Build constructs a module of the given type. Binding errors from the
// factory propagate unchanged; they are construction-time and fatal.
func (r *Registry) Build(typ string, p *pool.Pool, params *Params) (Module, error) {
	r.mu.RLock()
	factory, ok := r.factories[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, typ)
	}

	m, err := factory(p, params)
	if err != nil {
		return nil, fmt.Errorf("building module %s (type %s): %w", params.ModuleName(), typ, err)
	}
	logging.ModulesDebug("built module %s (type=%s, dimensions=%d)", m.Name(), typ, m.Dimensions())
	return m, nil
}

// Global registry instance for convenience.
var globalRegistry = NewRegistry()

// Global returns the global module registry.
func Global() *Registry {
	return globalRegistry
}

// Register adds a factory to the global registry.
func Register(typ string, factory Factory) error {
	return globalRegistry.Register(typ, factory)
}

// MustRegister registers a factory in the global registry, panicking on error.
func MustRegister(typ string, factory Factory) {
	globalRegistry.MustRegister(typ, factory)
}

// Build constructs a module from the global registry.
func Build(typ string, p *pool.Pool, params *Params) (Module, error) {
	return globalRegistry.Build(typ, p, params)
}
