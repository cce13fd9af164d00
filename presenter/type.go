package presenter

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// DefaultSlot is the slot name of types that never declare subjects.
const DefaultSlot = "subject"

// Method is a hand-written instance method. It takes part in Send,
// container resolution and serialization of Serializable fields.
type Method func(in *Instance, args ...any) (any, error)

// Provider returns the object a delegation forwards to.
type Provider func(in *Instance) any

// Type is a built, immutable presenter type.
type Type struct {
	name             string
	parent           *Type
	slots            []string
	registry         *Registry
	suppressPrefixes bool
	transparent      bool
	methods          map[string]Method
	delegations      map[string]Provider
}

// Define declares and builds a presenter type.
func Define(name string, declare func(d *Decl)) (*Type, error) {
	return build(name, nil, declare)
}

// MustDefine is like Define but panics on declaration errors.
// It simplifies safe initialization of global presenter types.
func MustDefine(name string, declare func(d *Decl)) *Type {
	t, err := Define(name, declare)
	if err != nil {
		panic(err)
	}

	return t
}

// Extend declares a subtype of parent. The subtype starts from a copy of the
// parent's slots, flags, methods and registry; declare may add to or
// override any of them.
func Extend(parent *Type, name string, declare func(d *Decl)) (*Type, error) {
	if parent == nil {
		return nil, &DeclarationError{Presenter: name, Reason: "parent type is nil"}
	}

	return build(name, parent, declare)
}

// MustExtend is like Extend but panics on declaration errors.
func MustExtend(parent *Type, name string, declare func(d *Decl)) *Type {
	t, err := Extend(parent, name, declare)
	if err != nil {
		panic(err)
	}

	return t
}

func build(name string, parent *Type, declare func(d *Decl)) (*Type, error) {
	t := &Type{
		name:        name,
		parent:      parent,
		registry:    newRegistry(),
		methods:     make(map[string]Method),
		delegations: make(map[string]Provider),
	}

	if parent != nil {
		t.inherit(parent)
	}

	d := &Decl{typ: t}
	if declare != nil {
		declare(d)
	}

	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}

	if len(t.slots) == 0 {
		t.slots = []string{DefaultSlot}
	}

	return t, nil
}

// inherit replays the parent's declarations onto t in registry order.
func (t *Type) inherit(parent *Type) {
	t.slots = slices.Clone(parent.slots)
	t.suppressPrefixes = parent.suppressPrefixes
	t.transparent = parent.transparent
	t.methods = maps.Clone(parent.methods)
	t.delegations = maps.Clone(parent.delegations)

	for _, name := range parent.registry.names {
		t.registry.set(parent.registry.attrs[name].clone())
	}
}

// Name returns the declared type name.
func (t *Type) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

// Parent returns the extended type, or nil.
func (t *Type) Parent() *Type { return t.parent }

// Slots returns the subject slot names; the first one is primary.
func (t *Type) Slots() []string { return slices.Clone(t.slots) }

// Registry returns the read-only attribute registry.
func (t *Type) Registry() *Registry { return t.registry }

// SuppressesPrefixes reports whether container prefixes are off by default.
func (t *Type) SuppressesPrefixes() bool { return t.suppressPrefixes }

// Transparent reports whether unknown calls are forwarded to the primary subject.
func (t *Type) Transparent() bool { return t.transparent }

// HasMethod reports whether a hand-written method name is declared.
func (t *Type) HasMethod(name string) bool {
	_, ok := t.methods[name]
	return ok
}

// Delegations returns the delegated method names, sorted.
func (t *Type) Delegations() []string {
	return slices.Sorted(maps.Keys(t.delegations))
}

// Is reports whether t is other or extends it.
func (t *Type) Is(other *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}

	return false
}

func (t *Type) isSlot(name string) bool {
	return slices.Contains(t.slots, name)
}

// Decl collects the declaration statements of one type.
// Errors are accumulated and reported by Define/Extend.
type Decl struct {
	typ  *Type
	errs []error
}

func (d *Decl) fail(reason string, names ...string) {
	d.errs = append(d.errs, &DeclarationError{
		Presenter: d.typ.name,
		Names:     names,
		Reason:    reason,
	})
}

// Subjects declares the subject slots in positional order. Without
// arguments it only returns the current slots.
func (d *Decl) Subjects(names ...string) []string {
	if len(names) == 0 {
		if len(d.typ.slots) == 0 {
			d.typ.slots = []string{DefaultSlot}
		}

		return slices.Clone(d.typ.slots)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			d.fail("subject name is blank", names...)
			return slices.Clone(d.typ.slots)
		}

		if seen[name] {
			d.fail("subject declared twice", name)
			return slices.Clone(d.typ.slots)
		}

		seen[name] = true
	}

	d.typ.slots = slices.Clone(names)

	return slices.Clone(d.typ.slots)
}

// Subject is an alias of Subjects.
func (d *Decl) Subject(names ...string) []string {
	return d.Subjects(names...)
}

// SuppressPrefixes makes container prefixes opt-in for later Expose statements.
func (d *Decl) SuppressPrefixes() {
	d.typ.suppressPrefixes = true
}

// ExposeAll makes the type transparent: calls that match nothing declared
// are forwarded to the primary subject.
func (d *Decl) ExposeAll() {
	d.typ.transparent = true
}

// Method declares a hand-written instance method.
func (d *Decl) Method(name string, m Method) {
	if strings.TrimSpace(name) == "" {
		d.fail("method name is blank")
		return
	}

	if m == nil {
		d.fail("method body is nil", name)
		return
	}

	d.typ.methods[name] = m
}

// Delegate forwards each name, unchanged, to the object returned by p.
func (d *Decl) Delegate(p Provider, names ...string) {
	if p == nil {
		d.fail("delegation provider is nil", names...)
		return
	}

	if len(names) == 0 {
		d.fail("delegation without method names")
		return
	}

	for _, name := range names {
		d.typ.delegations[name] = p
	}
}

// Serializable registers hand-written methods as serialized fields.
func (d *Decl) Serializable(names ...string) {
	d.ExposeMany(names, Serializable())
}

// Expose exposes a single attribute.
func (d *Decl) Expose(name string, opts ...Option) {
	d.ExposeMany([]string{name}, opts...)
}

// ExposeMany exposes several attributes with one option set.
func (d *Decl) ExposeMany(names []string, opts ...Option) {
	var o exposeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if reason := validateExpose(names, &o); reason != "" {
		d.fail(reason, names...)
		return
	}

	prefix := !d.typ.suppressPrefixes
	if o.prefix != nil {
		prefix = *o.prefix
	}

	// One wrapper per declaration: the container and the names identify it.
	var wrapperKey string
	if o.wrapper != nil {
		wrapperKey = o.with + "." + strings.Join(names, "_") + "_wrapper"
	}

	for _, name := range names {
		a := &Attribute{
			Source:           name,
			With:             o.with,
			As:               o.as,
			Nested:           o.nested,
			SerializableOnly: o.serializable,
			Wrapper:          o.wrapper,
			WrapperKey:       wrapperKey,
		}

		if o.prefix != nil {
			p := *o.prefix
			a.Prefix = &p
		}

		if o.serializable {
			a.Name = name
		} else {
			a.Name = outputName(name, o.with, o.as, prefix)
		}

		d.typ.registry.set(a)
	}
}

func validateExpose(names []string, o *exposeOptions) string {
	switch {
	case len(names) == 0:
		return "expose without attribute names"
	case slices.ContainsFunc(names, func(n string) bool { return strings.TrimSpace(n) == "" }):
		return "attribute name is blank"
	case o.serializable && o.nested != nil:
		return "serializable field cannot use a nested presenter"
	case o.serializable && o.wrapper != nil:
		return "serializable field cannot use a wrapper"
	case o.serializable && (o.as != "" || o.with != ""):
		return "serializable field cannot be renamed or read from a container"
	case o.wrapper != nil && o.with == "":
		return "wrapper requires a container"
	case o.as != "" && len(names) > 1:
		return "alias applies to a single attribute"
	}

	return ""
}
