package presenter

import (
	"slices"
	"strings"
)

// TypeRef lazily yields a presenter type. It lets declarations refer to
// types that are built later, including the declaring type itself.
type TypeRef func() *Type

// WrapperFunc chooses the wrapper presenter type for an instance. The
// instance is passed explicitly so the choice may depend on its values.
type WrapperFunc func(in *Instance) *Type

// Attribute is one exposed output field.
type Attribute struct {
	// Name is the output field name.
	Name string
	// Source is the attribute read from the resolved target.
	Source string
	// With names the container: a subject slot or a member of the primary subject.
	With string
	// As renames the field.
	As string
	// Prefix overrides the type's prefix default when non-nil.
	Prefix *bool
	// Nested re-wraps non-blank values in another presenter.
	Nested TypeRef
	// SerializableOnly entries have no accessor: the value comes from the
	// hand-written method named Name.
	SerializableOnly bool
	// Wrapper, together with With, routes the field through a shared wrapper.
	Wrapper WrapperFunc
	// WrapperKey identifies the wrapper cache slot shared by one declaration.
	WrapperKey string
}

// NestedType returns the nested presenter type or nil.
func (a *Attribute) NestedType() *Type {
	if a.Nested == nil {
		return nil
	}

	return a.Nested()
}

// IsWrapped reports whether the field is routed through a wrapper.
func (a *Attribute) IsWrapped() bool {
	return a.Wrapper != nil && a.With != ""
}

func (a *Attribute) clone() *Attribute {
	c := *a
	if a.Prefix != nil {
		p := *a.Prefix
		c.Prefix = &p
	}

	return &c
}

// outputName joins the container prefix and the (aliased) attribute name.
func outputName(source, with, as string, prefix bool) string {
	field := source
	if as != "" {
		field = as
	}

	if prefix && with != "" {
		return strings.Join([]string{with, field}, "_")
	}

	return field
}

// Registry is an ordered mapping from output field name to Attribute.
// The zero value is not usable; registries are created by Define and Extend.
type Registry struct {
	names []string
	attrs map[string]*Attribute
}

func newRegistry() *Registry {
	return &Registry{attrs: make(map[string]*Attribute)}
}

// set registers a, replacing an entry of the same name in place.
func (r *Registry) set(a *Attribute) {
	if _, exists := r.attrs[a.Name]; !exists {
		r.names = append(r.names, a.Name)
	}

	r.attrs[a.Name] = a
}

func (r *Registry) lookup(name string) (*Attribute, bool) {
	a, ok := r.attrs[name]
	return a, ok
}

// Get returns a copy of the attribute registered under name.
func (r *Registry) Get(name string) (Attribute, bool) {
	a, ok := r.attrs[name]
	if !ok {
		return Attribute{}, false
	}

	return *a.clone(), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.attrs[name]
	return ok
}

// Names returns the output field names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.names)
}

// Attributes returns copies of all attributes in registration order.
func (r *Registry) Attributes() []Attribute {
	out := make([]Attribute, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, *r.attrs[name].clone())
	}

	return out
}
