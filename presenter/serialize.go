package presenter

import (
	"bytes"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Map is the ordered key-value form of a serialized instance. Keys follow the
// registry order; consumers should still treat it as a mapping.
type Map struct {
	keys   []string
	values map[string]any
}

func newMap(capacity int) *Map {
	return &Map{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (m *Map) set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Keys returns the keys in order.
func (m *Map) Keys() []string { return slices.Clone(m.keys) }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Plain converts m, and every nested Map, into map[string]any.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}

	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case *Map:
		if x == nil {
			return nil
		}

		return x.Plain()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}

		return out
	default:
		return v
	}
}

// MarshalJSON encodes m as a JSON object in key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes m as a YAML mapping in key order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range m.keys {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	return node, nil
}

// ToMap serializes the instance by evaluating every registry field in order.
// Nested presenter instances are serialized recursively.
func (in *Instance) ToMap() (*Map, error) {
	names := in.typ.registry.names
	m := newMap(len(names))

	for _, name := range names {
		v, err := in.evaluate(in.typ.registry.attrs[name], nil)
		if err != nil {
			return nil, err
		}

		resolved, err := resolveNested(v)
		if err != nil {
			return nil, err
		}

		m.set(name, resolved)
	}

	return m, nil
}

func resolveNested(v any) (any, error) {
	switch x := v.(type) {
	case *Instance:
		if x == nil {
			return nil, nil
		}

		return x.ToMap()
	case []*Instance:
		out := make([]any, len(x))
		for i, e := range x {
			r, err := resolveNested(e)
			if err != nil {
				return nil, err
			}

			out[i] = r
		}

		return out, nil
	default:
		return v, nil
	}
}

// MarshalJSON implements json.Marshaler through ToMap.
func (in *Instance) MarshalJSON() ([]byte, error) {
	m, err := in.ToMap()
	if err != nil {
		return nil, err
	}

	return m.MarshalJSON()
}

// MarshalYAML implements yaml.Marshaler through ToMap.
func (in *Instance) MarshalYAML() (any, error) {
	m, err := in.ToMap()
	if err != nil {
		return nil, err
	}

	return m.MarshalYAML()
}

// ToJSON encodes the instance with goccy/go-json, indented when indent is set.
func (in *Instance) ToJSON(indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(in)
	}

	return json.MarshalIndent(in, "", indent)
}
