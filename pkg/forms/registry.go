package forms

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores forms by name.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Form
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		forms: make(map[string]*Form),
	}
}

// Register adds form under name. Duplicate names return an error.
func (r *Registry) Register(name string, form *Form) error {
	if form == nil {
		return fmt.Errorf("forms: form is required")
	}
	if name == "" {
		return fmt.Errorf("forms: form name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.forms[name]; exists {
		return fmt.Errorf("forms: form %q already registered", name)
	}
	r.forms[name] = form
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, form *Form) {
	if err := r.Register(name, form); err != nil {
		panic(err)
	}
}

// Get retrieves a form by name.
func (r *Registry) Get(name string) (*Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("forms: form %q not found", name)
	}
	return form, nil
}

// MustGet panics if the form is missing.
func (r *Registry) MustGet(name string) *Form {
	form, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return form
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.forms[name]
	return ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.forms))
	for name := range r.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
