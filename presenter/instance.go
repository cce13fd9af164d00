package presenter

import (
	"fmt"
	"reflect"
	"strings"
)

// Instance binds subjects to a Type.
type Instance struct {
	typ      *Type
	subjects map[string]any
	wrappers map[string]*Instance
}

// New binds subjects to the type's slots by position. Missing positions are
// bound to nil and extra ones are ignored.
func (t *Type) New(subjects ...any) *Instance {
	in := &Instance{
		typ:      t,
		subjects: make(map[string]any, len(t.slots)),
	}

	for i, name := range t.slots {
		if i < len(subjects) {
			in.subjects[name] = subjects[i]
		} else {
			in.subjects[name] = nil
		}
	}

	return in
}

// Type returns the presenter type of the instance.
func (in *Instance) Type() *Type { return in.typ }

// Is reports whether the instance's type is t or extends it.
func (in *Instance) Is(t *Type) bool { return in.typ.Is(t) }

// Subject returns the value bound to the primary slot.
func (in *Instance) Subject() any {
	return in.subjects[in.typ.slots[0]]
}

// Slot returns the value bound to a named slot.
func (in *Instance) Slot(name string) (any, bool) {
	v, ok := in.subjects[name]
	return v, ok
}

// Value evaluates a registry field.
func (in *Instance) Value(field string, args ...any) (any, error) {
	a, ok := in.typ.registry.lookup(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUndefinedMethod, in.typ.name, field)
	}

	return in.evaluate(a, args)
}

// RespondsTo implements Messenger.
func (in *Instance) RespondsTo(name string) bool {
	if a, ok := in.typ.registry.lookup(name); ok && !a.SerializableOnly {
		return true
	}

	if name == DefaultSlot || in.typ.HasMethod(name) {
		return true
	}

	if _, ok := in.typ.delegations[name]; ok {
		return true
	}

	return in.typ.transparent && RespondsTo(in.Subject(), name)
}

// Send implements Messenger. It answers, in order: registry fields, the
// public subject accessor, hand-written methods, delegations and, for
// transparent types, any member of the primary subject.
func (in *Instance) Send(name string, args ...any) (any, error) {
	if a, ok := in.typ.registry.lookup(name); ok && !a.SerializableOnly {
		return in.evaluate(a, args)
	}

	if name == DefaultSlot {
		return in.Subject(), nil
	}

	if m, ok := in.typ.methods[name]; ok {
		return m(in, args...)
	}

	if p, ok := in.typ.delegations[name]; ok {
		v, _, err := send(p(in), name, args)
		return v, err
	}

	if in.typ.transparent {
		if v, ok, err := send(in.Subject(), name, args); ok {
			return v, err
		}
	}

	return nil, fmt.Errorf("%w: %s#%s", ErrUndefinedMethod, in.typ.name, name)
}

func (in *Instance) evaluate(a *Attribute, args []any) (any, error) {
	if a.SerializableOnly {
		m, ok := in.typ.methods[a.Name]
		if !ok {
			return nil, nil
		}

		return m(in, args...)
	}

	var (
		raw any
		err error
	)

	if a.IsWrapped() {
		var w *Instance

		w, err = in.wrapper(a)
		if err == nil && w != nil {
			raw, _, err = send(w, a.Source, args)
		}
	} else {
		raw, err = in.proxy(a.With, a.Source, args)
	}

	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", in.typ.name, a.Name, err)
	}

	return decorate(raw, a.NestedType()), nil
}

// proxy reads source from the target selected by container.
func (in *Instance) proxy(container, source string, args []any) (any, error) {
	target, err := in.container(container)
	if err != nil {
		return nil, err
	}

	v, _, err := send(target, source, args)

	return v, err
}

// container resolves a container name:
// 1. empty: the primary subject
// 2. a slot: a hand-written method of that name, else the bound value
// 3. otherwise: the member of that name on the primary subject.
func (in *Instance) container(name string) (any, error) {
	if name == "" {
		return in.Subject(), nil
	}

	if in.typ.isSlot(name) {
		if m, ok := in.typ.methods[name]; ok {
			return m(in)
		}

		return in.subjects[name], nil
	}

	v, _, err := send(in.Subject(), name, nil)

	return v, err
}

// wrapper returns the instance-cached wrapper for a, building it on first use.
func (in *Instance) wrapper(a *Attribute) (*Instance, error) {
	if w, ok := in.wrappers[a.WrapperKey]; ok {
		return w, nil
	}

	var (
		value any
		err   error
	)

	if m, ok := in.typ.methods[a.With]; ok {
		value, err = m(in)
	} else {
		value, err = in.container(a.With)
	}

	if err != nil {
		return nil, err
	}

	var w *Instance
	if wt := a.Wrapper(in); wt != nil {
		w = wt.New(value)
	}

	if in.wrappers == nil {
		in.wrappers = make(map[string]*Instance)
	}

	in.wrappers[a.WrapperKey] = w

	return w, nil
}

// decorate wraps value in nested unless it is blank.
func decorate(value any, nested *Type) any {
	if nested == nil || blank(value) {
		return value
	}

	if isSequence(reflect.ValueOf(value)) {
		return nested.Map(value)
	}

	return nested.New(value)
}

// blank reports nil, typed nils, false, whitespace-only strings and empty
// collections.
func blank(value any) bool {
	if isNil(value) {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

func isSequence(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}
