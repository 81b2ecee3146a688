package render

import (
	"fmt"
	"sort"
	"sync"
)

type entry struct {
	factory Factory
	loadErr error
}

// Registry stores renderer factories by name. An entry may instead hold the
// error produced when an optional backing library failed to initialize at
// process start; resolving such a name re-raises that exact error rather than
// a generic unknown-renderer one.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a factory under name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("render: factory is required")
	}
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.entries[name] = entry{factory: factory}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// RegisterError records a load-failure placeholder for name, marking a
// renderer whose optional dependency could not be initialized.
func (r *Registry) RegisterError(name string, loadErr error) error {
	if loadErr == nil {
		return fmt.Errorf("render: load error is required")
	}
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.entries[name] = entry{loadErr: loadErr}
	return nil
}

// Resolve returns the factory registered under name. A load-failure entry
// yields its stored error verbatim; a missing entry yields an
// *UnknownRendererError enumerating every registered name.
func (r *Registry) Resolve(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownRendererError{
			Name:       name,
			Registered: r.namesLocked(),
			Degraded:   r.degradedLocked(),
		}
	}
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	return e.factory, nil
}

// Names returns a sorted list of registered renderer names, including degraded
// entries.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Has reports whether name is registered, degraded or not.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) degradedLocked() []string {
	var names []string
	for name, e := range r.entries {
		if e.loadErr != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
