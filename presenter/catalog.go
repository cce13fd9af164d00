package presenter

import (
	"fmt"
	"slices"
)

// Catalog is a named set of presenter types, kept in insertion order.
// It is filled once and read-only afterwards.
type Catalog struct {
	names []string
	types map[string]*Type
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]*Type)}
}

// Add registers t under its name.
func (c *Catalog) Add(t *Type) error {
	if t == nil {
		return fmt.Errorf("catalog: nil presenter type")
	}

	if _, exists := c.types[t.name]; exists {
		return fmt.Errorf("catalog: presenter %q already registered", t.name)
	}

	c.names = append(c.names, t.name)
	c.types[t.name] = t

	return nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	t, ok := c.types[name]
	return t, ok
}

// MustLookup is like Lookup but panics when name is unknown.
func (c *Catalog) MustLookup(name string) *Type {
	t, ok := c.types[name]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown presenter %q", name))
	}

	return t
}

// Names returns the registered names in insertion order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of registered types.
func (c *Catalog) Len() int {
	return len(c.names)
}
