package mapping

import (
	"fmt"
	"sort"

	"presenter-generator/presenter"
)

// MethodRegistry holds the Go code a declaration file refers to by name:
// hand-written methods and delegation providers.
type MethodRegistry struct {
	methods   map[string]presenter.Method
	providers map[string]presenter.Provider
}

// NewMethodRegistry creates a new empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods:   make(map[string]presenter.Method),
		providers: make(map[string]presenter.Provider),
	}
}

// Register adds a method. The key is either "name", shared by every
// presenter, or "Presenter.name", which takes precedence for that presenter.
func (r *MethodRegistry) Register(key string, m presenter.Method) *MethodRegistry {
	r.methods[key] = m
	return r
}

// RegisterAll adds every method of methods.
func (r *MethodRegistry) RegisterAll(methods map[string]presenter.Method) *MethodRegistry {
	for key, m := range methods {
		r.methods[key] = m
	}

	return r
}

// RegisterProvider adds a delegation provider.
func (r *MethodRegistry) RegisterProvider(name string, p presenter.Provider) *MethodRegistry {
	r.providers[name] = p
	return r
}

// Method returns the method bound to name for the given presenter.
func (r *MethodRegistry) Method(presenterName, name string) (presenter.Method, bool) {
	if r == nil {
		return nil, false
	}

	if m, ok := r.methods[presenterName+"."+name]; ok {
		return m, true
	}

	m, ok := r.methods[name]

	return m, ok
}

// Provider returns the provider registered as name.
func (r *MethodRegistry) Provider(name string) (presenter.Provider, bool) {
	if r == nil {
		return nil, false
	}

	p, ok := r.providers[name]

	return p, ok
}

// Has returns true if a method with the given key exists.
func (r *MethodRegistry) Has(key string) bool {
	if r == nil {
		return false
	}

	_, exists := r.methods[key]

	return exists
}

// Names returns all method keys, sorted.
func (r *MethodRegistry) Names() []string {
	if r == nil {
		return nil
	}

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ProviderNames returns all provider names, sorted.
func (r *MethodRegistry) ProviderNames() []string {
	if r == nil {
		return nil
	}

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Merge copies every entry of other into r, overwriting on conflict.
func (r *MethodRegistry) Merge(other *MethodRegistry) *MethodRegistry {
	if other == nil {
		return r
	}

	for k, m := range other.methods {
		r.methods[k] = m
	}

	for k, p := range other.providers {
		r.providers[k] = p
	}

	return r
}

// String implements fmt.Stringer.
func (r *MethodRegistry) String() string {
	return fmt.Sprintf("methods=%v providers=%v", r.Names(), r.ProviderNames())
}
