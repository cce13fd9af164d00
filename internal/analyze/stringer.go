package analyze

import (
	"slices"
	"strings"
)

// TypePath builds a readable path to a member, as used in diagnostics.
// Examples:
//   - "Post" for the subject itself
//   - "Post.Author" for a field
//   - "Post.Author.FullName()" for a method read on a field
//   - "Meta[title]" for a map key
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{parts: []string{root}}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return p.with(name)
}

// Method appends a method call to the path.
func (p *TypePath) Method(name string) *TypePath {
	return p.with(name + "()")
}

// Key appends a map key to the last element of the path.
func (p *TypePath) Key(key string) *TypePath {
	parts := slices.Clone(p.parts)
	parts[len(parts)-1] += "[" + key + "]"

	return &TypePath{parts: parts}
}

// Member appends m the way it is read.
func (p *TypePath) Member(m Member) *TypePath {
	switch m.Kind {
	case MemberMethod:
		return p.Method(m.Name)
	case MemberKey:
		return p.Key(m.Name)
	default:
		return p.Field(m.Name)
	}
}

func (p *TypePath) with(part string) *TypePath {
	return &TypePath{parts: append(slices.Clone(p.parts), part)}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer provides methods for creating readable type path strings.
type TypeStringer struct{}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer() *TypeStringer {
	return &TypeStringer{}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.GoType.String()

	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}
		return "struct{...}"

	case TypeKindPointer:
		if t.ElemType != nil {
			return "*" + s.TypeString(t.ElemType)
		}
		return "*<unknown>"

	case TypeKindSlice:
		if t.ElemType != nil {
			return "[]" + s.TypeString(t.ElemType)
		}
		return "[]<unknown>"

	case TypeKindArray, TypeKindMap, TypeKindInterface:
		if t.IsNamed() {
			return t.ID.Name
		}
		return t.GoType.String()

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}
		return s.TypeString(t.Underlying)

	case TypeKindExternal:
		if t.IsNamed() {
			return t.ID.String()
		}
		return t.GoType.String()

	default:
		return t.GoType.String()
	}
}
