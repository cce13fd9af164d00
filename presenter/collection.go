package presenter

import "reflect"

// Map builds one instance per element of items, a slice or array. Elements
// that are themselves sequences are spread as positional subjects; any other
// element is the sole subject. A non-sequence items is treated as a single
// element.
func (t *Type) Map(items any) []*Instance {
	rv := reflect.ValueOf(items)
	if items == nil || !isSequence(rv) {
		if isNil(items) {
			return []*Instance{}
		}

		return []*Instance{t.New(spread(items)...)}
	}

	out := make([]*Instance, 0, rv.Len())
	for i := range rv.Len() {
		out = append(out, t.New(spread(normalize(rv.Index(i)))...))
	}

	return out
}

// MapAll is the typed form of Type.Map.
func MapAll[S any](t *Type, items []S) []*Instance {
	out := make([]*Instance, 0, len(items))
	for _, item := range items {
		out = append(out, t.New(spread(item)...))
	}

	return out
}

func spread(item any) []any {
	rv := reflect.ValueOf(item)
	if isNil(item) || !isSequence(rv) {
		return []any{item}
	}

	subjects := make([]any, rv.Len())
	for i := range subjects {
		subjects[i] = normalize(rv.Index(i))
	}

	return subjects
}
