package presenter

import (
	"fmt"
	"reflect"
	"sort"

	"presenter-generator/internal/match"
)

// Messenger is implemented by values that resolve members by name
// themselves instead of through reflection. *Instance implements it.
type Messenger interface {
	// RespondsTo reports whether Send would answer name.
	RespondsTo(name string) bool
	// Send invokes name with args.
	Send(name string, args ...any) (any, error)
}

// member is a resolved, callable member of a target.
type member func(args []any) (any, error)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Send resolves name on target and invokes it, forwarding args.
// A nil target, or one without such a member, yields (nil, nil).
func Send(target any, name string, args ...any) (any, error) {
	v, _, err := send(target, name, args)
	return v, err
}

// RespondsTo reports whether target has a member called name.
func RespondsTo(target any, name string) bool {
	_, ok := lookup(target, name)
	return ok
}

func send(target any, name string, args []any) (any, bool, error) {
	m, ok := lookup(target, name)
	if !ok {
		return nil, false, nil
	}

	v, err := m(args)

	return v, true, err
}

// lookup finds name on target. Priority:
// 1. Messenger
// 2. exported method (exact, exported spelling, then normalized)
// 3. exported struct field (tag, exact, normalized)
// 4. string-keyed map entry (exact, then normalized).
func lookup(target any, name string) (member, bool) {
	if isNil(target) || name == "" {
		return nil, false
	}

	if m, ok := target.(Messenger); ok {
		if !m.RespondsTo(name) {
			return nil, false
		}

		return func(args []any) (any, error) { return m.Send(name, args...) }, true
	}

	rv := reflect.ValueOf(target)
	if fn, ok := findMethod(rv, name); ok {
		return func(args []any) (any, error) { return call(fn, name, args) }, true
	}

	base := indirect(rv)
	if !base.IsValid() {
		return nil, false
	}

	switch base.Kind() {
	case reflect.Struct:
		if f, ok := findField(base, name); ok {
			return func([]any) (any, error) { return normalize(f), nil }, true
		}
	case reflect.Map:
		if v, ok := findKey(base, name); ok {
			return func([]any) (any, error) { return normalize(v), nil }, true
		}
	default:
	}

	return nil, false
}

func findMethod(rv reflect.Value, name string) (reflect.Value, bool) {
	recv := rv
	if rv.Kind() != reflect.Pointer {
		// pointer method set is a superset of the value method set
		recv = reflect.New(rv.Type())
		recv.Elem().Set(rv)
	}

	if m := recv.MethodByName(name); m.IsValid() {
		return m, true
	}

	if m := recv.MethodByName(match.ExportedName(name)); m.IsValid() {
		return m, true
	}

	t := recv.Type()
	for i := range t.NumMethod() {
		if match.SameIdent(t.Method(i).Name, name) {
			return recv.Method(i), true
		}
	}

	return reflect.Value{}, false
}

// findField tries: `presenter:"name"`, `json:"name"`, exact name, normalized name.
func findField(base reflect.Value, name string) (reflect.Value, bool) {
	fields := reflect.VisibleFields(base.Type())

	passes := []func(f reflect.StructField) bool{
		func(f reflect.StructField) bool { return tagName(f, "presenter") == name },
		func(f reflect.StructField) bool { return tagName(f, "json") == name },
		func(f reflect.StructField) bool { return f.Name == name || f.Name == match.ExportedName(name) },
		func(f reflect.StructField) bool { return match.SameIdent(f.Name, name) },
	}

	for _, pass := range passes {
		for _, f := range fields {
			if !f.IsExported() || f.Anonymous || !pass(f) {
				continue
			}

			v, err := base.FieldByIndexErr(f.Index)
			if err != nil {
				// nil embedded pointer on the path
				continue
			}

			return v, true
		}
	}

	return reflect.Value{}, false
}

func tagName(f reflect.StructField, key string) string {
	tag := f.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}

	for i := range len(tag) {
		if tag[i] == ',' {
			return tag[:i]
		}
	}

	return tag
}

func findKey(base reflect.Value, name string) (reflect.Value, bool) {
	keyType := base.Type().Key()
	if keyType.Kind() != reflect.String {
		return reflect.Value{}, false
	}

	if v := base.MapIndex(reflect.ValueOf(name).Convert(keyType)); v.IsValid() {
		return v, true
	}

	keys := base.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, k := range keys {
		if match.SameIdent(k.String(), name) {
			return base.MapIndex(k), true
		}
	}

	return reflect.Value{}, false
}

// call invokes fn. Arguments beyond what fn accepts are dropped, so callbacks
// can be forwarded to members that ignore them; missing ones are an error.
func call(fn reflect.Value, name string, args []any) (any, error) {
	ft := fn.Type()

	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}

	if len(args) < fixed {
		return nil, fmt.Errorf("%w: %s needs %d arguments, got %d", ErrArgumentMismatch, name, fixed, len(args))
	}

	in := make([]reflect.Value, 0, len(args))
	for i := range fixed {
		v, ok := convertArg(args[i], ft.In(i))
		if !ok {
			return nil, fmt.Errorf("%w: %s argument %d is %T, want %s", ErrArgumentMismatch, name, i, args[i], ft.In(i))
		}

		in = append(in, v)
	}

	if ft.IsVariadic() {
		elem := ft.In(ft.NumIn() - 1).Elem()
		for i, a := range args[fixed:] {
			v, ok := convertArg(a, elem)
			if !ok {
				return nil, fmt.Errorf("%w: %s argument %d is %T, want %s", ErrArgumentMismatch, name, fixed+i, a, elem)
			}

			in = append(in, v)
		}
	}

	out := fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}

	last := len(out) - 1
	if ft.Out(last) == errorType {
		if !out[last].IsNil() {
			return nil, out[last].Interface().(error)
		}

		if last == 0 {
			return nil, nil
		}
	}

	return normalize(out[0]), nil
}

func convertArg(a any, t reflect.Type) (reflect.Value, bool) {
	if a == nil {
		if nillable(t.Kind()) {
			return reflect.Zero(t), true
		}

		return reflect.Value{}, false
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, true
	}

	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), true
	}

	return reflect.Value{}, false
}

// normalize unwraps v and maps typed nils to an untyped nil.
func normalize(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	if nillable(v.Kind()) && v.IsNil() {
		return nil
	}

	return v.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return nillable(rv.Kind()) && rv.IsNil()
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
