package analyze

import (
	"presenter-generator/internal/match"
)

//go:generate go tool stringer -type=MemberKind -output=member_kind_string.go

// MemberKind tells how a member is read.
type MemberKind int

const (
	MemberNone MemberKind = iota
	MemberMethod
	MemberField
	MemberKey
)

// Member is the static counterpart of a runtime member lookup.
type Member struct {
	Kind   MemberKind
	Name   string    // Go name of the method or field, or the map key
	Type   *TypeInfo // Field, first result or map element type; may be nil
	Method *MethodInfo
}

// Member resolves name on t in the order presenters use at runtime:
// methods, then fields (presenter tag, json tag, Go name, normalized
// name), then string map keys.
func (t *TypeInfo) Member(name string) (Member, bool) {
	t = t.Deref()
	if t == nil || name == "" {
		return Member{}, false
	}

	if m, ok := t.findMethod(name); ok {
		return Member{Kind: MemberMethod, Name: m.Name, Type: m.Result, Method: m}, true
	}

	base := t
	for base != nil && base.Kind == TypeKindAlias {
		base = base.Underlying.Deref()
	}

	if base == nil {
		return Member{}, false
	}

	switch base.Kind {
	case TypeKindStruct:
		if f, ok := findField(base, name); ok {
			return Member{Kind: MemberField, Name: f.Name, Type: f.Type}, true
		}
	case TypeKindMap:
		if k := base.KeyType; k != nil && k.Kind == TypeKindBasic && k.GoType != nil && k.GoType.String() == "string" {
			return Member{Kind: MemberKey, Name: name, Type: base.ElemType}, true
		}
	default:
	}

	return Member{}, false
}

// Opaque reports whether members of t can only be known at runtime:
// interfaces, maps and unknown kinds.
func (t *TypeInfo) Opaque() bool {
	t = t.Deref()
	for t != nil && t.Kind == TypeKindAlias {
		t = t.Underlying.Deref()
	}

	if t == nil {
		return true
	}

	switch t.Kind {
	case TypeKindInterface, TypeKindMap, TypeKindUnknown:
		return true
	default:
		return false
	}
}

func (t *TypeInfo) findMethod(name string) (*MethodInfo, bool) {
	exported := match.ExportedName(name)

	passes := []func(m *MethodInfo) bool{
		func(m *MethodInfo) bool { return m.Name == name },
		func(m *MethodInfo) bool { return m.Name == exported },
		func(m *MethodInfo) bool { return match.SameIdent(m.Name, name) },
	}

	for _, pass := range passes {
		for i := range t.Methods {
			if pass(&t.Methods[i]) {
				return &t.Methods[i], true
			}
		}
	}

	return nil, false
}

func findField(t *TypeInfo, name string) (*FieldInfo, bool) {
	fields := visibleFields(t)
	exported := match.ExportedName(name)

	passes := []func(f *FieldInfo) bool{
		func(f *FieldInfo) bool { return f.TagName("presenter") == name },
		func(f *FieldInfo) bool { return f.TagName("json") == name },
		func(f *FieldInfo) bool { return f.Name == name || f.Name == exported },
		func(f *FieldInfo) bool { return match.SameIdent(f.Name, name) },
	}

	for _, pass := range passes {
		for _, f := range fields {
			if pass(f) {
				return f, true
			}
		}
	}

	return nil, false
}

// visibleFields lists the non-embedded fields of t followed by those
// promoted from embedded structs, breadth first.
func visibleFields(t *TypeInfo) []*FieldInfo {
	var out []*FieldInfo

	visited := map[*TypeInfo]bool{}
	queue := []*TypeInfo{t}

	for len(queue) > 0 {
		cur := queue[0].Deref()
		queue = queue[1:]

		for cur != nil && cur.Kind == TypeKindAlias {
			cur = cur.Underlying.Deref()
		}

		if cur == nil || visited[cur] || cur.Kind != TypeKindStruct {
			continue
		}

		visited[cur] = true

		for i := range cur.Fields {
			f := &cur.Fields[i]
			if f.Embedded {
				queue = append(queue, f.Type)
				continue
			}

			out = append(out, f)
		}
	}

	return out
}
